// Package obligation contains obligation management use cases.
package obligation

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
)

// ListObligationsInput represents the input for listing obligations.
type ListObligationsInput struct {
	PartnershipID uuid.UUID
	ActiveOnly    bool
}

// ListObligationsOutput represents the result of listing obligations.
type ListObligationsOutput struct {
	Obligations []*entity.Obligation
}

// ListObligationsUseCase handles listing a partnership's obligations.
type ListObligationsUseCase struct {
	obligations adapter.ObligationRepository
}

// NewListObligationsUseCase creates a new ListObligationsUseCase instance.
func NewListObligationsUseCase(obligations adapter.ObligationRepository) *ListObligationsUseCase {
	return &ListObligationsUseCase{obligations: obligations}
}

// Execute lists the obligations.
func (uc *ListObligationsUseCase) Execute(ctx context.Context, input ListObligationsInput) (*ListObligationsOutput, error) {
	obligations, err := uc.obligations.ListByPartnership(ctx, input.PartnershipID, input.ActiveOnly)
	if err != nil {
		return nil, err
	}

	return &ListObligationsOutput{Obligations: obligations}, nil
}
