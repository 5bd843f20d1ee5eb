// Package obligation contains obligation management use cases.
package obligation

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	domainerror "github.com/pairfin/backend/internal/domain/error"
)

// DeactivateObligationInput represents the input for deactivating an obligation.
type DeactivateObligationInput struct {
	ObligationID  uuid.UUID
	PartnershipID uuid.UUID
}

// DeactivateObligationUseCase handles deactivating an obligation. Matches
// already recorded stay: history is immutable, the obligation just stops
// participating in reconciliation.
type DeactivateObligationUseCase struct {
	obligations adapter.ObligationRepository
}

// NewDeactivateObligationUseCase creates a new DeactivateObligationUseCase instance.
func NewDeactivateObligationUseCase(obligations adapter.ObligationRepository) *DeactivateObligationUseCase {
	return &DeactivateObligationUseCase{obligations: obligations}
}

// Execute deactivates the obligation after an ownership check.
func (uc *DeactivateObligationUseCase) Execute(ctx context.Context, input DeactivateObligationInput) error {
	ob, err := uc.obligations.GetByID(ctx, input.ObligationID)
	if err != nil {
		return err
	}

	if ob.PartnershipID != input.PartnershipID {
		return domainerror.NewObligationError(
			domainerror.ErrCodeNotAuthorizedObligation,
			"not authorized to access obligation",
			domainerror.ErrNotAuthorizedForObligation,
		)
	}

	return uc.obligations.Deactivate(ctx, input.ObligationID)
}
