// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// ObligationRepository defines the interface for obligation persistence operations.
type ObligationRepository interface {
	// Create persists a new obligation.
	Create(ctx context.Context, obligation *entity.Obligation) error

	// GetByID retrieves an obligation by ID.
	// Returns domain ErrObligationNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Obligation, error)

	// ListByPartnership retrieves all obligations of a partnership,
	// optionally restricted to active ones.
	ListByPartnership(ctx context.Context, partnershipID uuid.UUID, activeOnly bool) ([]*entity.Obligation, error)

	// ListMatchable retrieves the active obligations of a partnership that
	// carry a merchant identifier, filtered by kind. This is the candidate
	// pool the webhook path evaluates a transaction against.
	ListMatchable(ctx context.Context, partnershipID uuid.UUID, kind entity.ObligationKind) ([]*entity.Obligation, error)

	// Update persists changes to an obligation.
	Update(ctx context.Context, obligation *entity.Obligation) error

	// UpdateNextDue moves the obligation's next_due pointer. Callers only
	// invoke this when the date actually changed.
	UpdateNextDue(ctx context.Context, id uuid.UUID, nextDue time.Time) error

	// Deactivate soft-disables an obligation.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
