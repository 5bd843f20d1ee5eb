package obligation

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
)

// GetObligationInput represents the input for fetching one obligation.
type GetObligationInput struct {
	ObligationID  uuid.UUID
	PartnershipID uuid.UUID
}

// GetObligationUseCase fetches a single obligation, enforcing that it
// belongs to the caller's partnership.
type GetObligationUseCase struct {
	obligations adapter.ObligationRepository
}

// NewGetObligationUseCase creates a new GetObligationUseCase instance.
func NewGetObligationUseCase(obligations adapter.ObligationRepository) *GetObligationUseCase {
	return &GetObligationUseCase{obligations: obligations}
}

// Execute fetches the obligation.
func (uc *GetObligationUseCase) Execute(ctx context.Context, input GetObligationInput) (*entity.Obligation, error) {
	ob, err := uc.obligations.GetByID(ctx, input.ObligationID)
	if err != nil {
		return nil, err
	}

	if ob.PartnershipID != input.PartnershipID {
		return nil, domainerror.NewObligationError(
			domainerror.ErrCodeNotAuthorizedObligation,
			"not authorized to access obligation",
			domainerror.ErrNotAuthorizedForObligation,
		)
	}

	return ob, nil
}
