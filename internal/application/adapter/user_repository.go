// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	// Returns domain ErrUserNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ListByPartnership retrieves all members of a partnership.
	ListByPartnership(ctx context.Context, partnershipID uuid.UUID) ([]*entity.User, error)
}
