// Package obligation contains obligation management use cases.
package obligation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// UpdateObligationInput represents the input for updating an obligation.
// Nil pointer fields are left unchanged.
type UpdateObligationInput struct {
	ObligationID    uuid.UUID
	PartnershipID   uuid.UUID // caller's partnership, for ownership check
	Name            *string
	MerchantPattern *string
	ExpectedAmount  *decimal.Decimal
	Recurrence      *string
	NextDue         *time.Time
	Active          *bool
}

// UpdateObligationOutput represents the result of updating an obligation.
type UpdateObligationOutput struct {
	Obligation      *entity.Obligation
	Rematched       int
	MatchingFailure string
}

// UpdateObligationUseCase handles obligation edits. Changes to the match
// criteria (merchant, pattern, expected amount) re-trigger the batch sweep
// so history reflects the new definition.
type UpdateObligationUseCase struct {
	obligations adapter.ObligationRepository
	rematch     *matching.RematchObligationUseCase
}

// NewUpdateObligationUseCase creates a new UpdateObligationUseCase instance.
func NewUpdateObligationUseCase(
	obligations adapter.ObligationRepository,
	rematch *matching.RematchObligationUseCase,
) *UpdateObligationUseCase {
	return &UpdateObligationUseCase{
		obligations: obligations,
		rematch:     rematch,
	}
}

// Execute applies the edit.
func (uc *UpdateObligationUseCase) Execute(ctx context.Context, input UpdateObligationInput) (*UpdateObligationOutput, error) {
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

	criteriaChanged := false

	if input.Name != nil && *input.Name != ob.Name {
		ob.Name = *input.Name
		criteriaChanged = true
	}
	if input.MerchantPattern != nil {
		ob.MerchantPattern = input.MerchantPattern
		criteriaChanged = true
	}
	if input.ExpectedAmount != nil {
		ob.ExpectedAmount = input.ExpectedAmount
		criteriaChanged = true
	}
	if input.Recurrence != nil {
		if !valueobject.Recurrence(*input.Recurrence).Valid() {
			return nil, domainerror.NewObligationError(
				domainerror.ErrCodeInvalidRecurrence,
				"invalid recurrence type",
				domainerror.ErrInvalidRecurrence,
			)
		}
		ob.Recurrence = valueobject.Recurrence(*input.Recurrence)
	}
	if input.NextDue != nil {
		ob.NextDue = *input.NextDue
	}
	if input.Active != nil {
		ob.Active = *input.Active
	}

	if !ob.HasMatchCriteria() {
		return nil, domainerror.NewObligationError(
			domainerror.ErrCodeObligationNameRequired,
			"obligation name or pattern is required",
			domainerror.ErrObligationNameRequired,
		)
	}

	ob.UpdatedAt = time.Now().UTC()

	if err := uc.obligations.Update(ctx, ob); err != nil {
		return nil, err
	}

	out := &UpdateObligationOutput{Obligation: ob}

	if criteriaChanged && ob.Active {
		result := uc.rematch.Execute(ctx, matching.RematchObligationInput{ObligationID: ob.ID})
		out.Rematched = result.Matched
		out.MatchingFailure = result.FailureReason
	}

	return out, nil
}
