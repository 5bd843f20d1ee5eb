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

// CreateObligationInput represents the input for creating an obligation.
type CreateObligationInput struct {
	PartnershipID   uuid.UUID
	Name            string
	MerchantPattern *string
	ExpectedAmount  *decimal.Decimal
	Recurrence      string
	NextDue         time.Time
	Kind            string
	IncomeType      *string
}

// CreateObligationOutput represents the result of creating an obligation.
type CreateObligationOutput struct {
	Obligation *entity.Obligation
	// Matched is the number of historical transactions reconciled against
	// the new obligation.
	Matched int
	// MatchingFailure carries the soft failure of the follow-up re-match
	// sweep. Creation itself has already succeeded when this is set.
	MatchingFailure string
}

// CreateObligationUseCase handles creating a new obligation and immediately
// reconciling it against the partnership's transaction history.
type CreateObligationUseCase struct {
	obligations adapter.ObligationRepository
	rematch     *matching.RematchObligationUseCase
}

// NewCreateObligationUseCase creates a new CreateObligationUseCase instance.
func NewCreateObligationUseCase(
	obligations adapter.ObligationRepository,
	rematch *matching.RematchObligationUseCase,
) *CreateObligationUseCase {
	return &CreateObligationUseCase{
		obligations: obligations,
		rematch:     rematch,
	}
}

// Execute creates the obligation. A failed re-match never rolls the
// creation back.
func (uc *CreateObligationUseCase) Execute(ctx context.Context, input CreateObligationInput) (*CreateObligationOutput, error) {
	if err := validateInput(input.Name, input.MerchantPattern, input.Recurrence, input.Kind, input.NextDue); err != nil {
		return nil, err
	}

	kind := entity.ObligationKind(input.Kind)

	ob := entity.NewObligation(
		input.PartnershipID,
		input.Name,
		input.MerchantPattern,
		input.ExpectedAmount,
		valueobject.Recurrence(input.Recurrence),
		input.NextDue,
		kind,
	)
	ob.IncomeType = input.IncomeType

	if err := uc.obligations.Create(ctx, ob); err != nil {
		return nil, err
	}

	result := uc.rematch.Execute(ctx, matching.RematchObligationInput{ObligationID: ob.ID})

	return &CreateObligationOutput{
		Obligation:      ob,
		Matched:         result.Matched,
		MatchingFailure: result.FailureReason,
	}, nil
}

// validateInput checks the user-supplied obligation fields.
func validateInput(name string, pattern *string, recurrence, kind string, nextDue time.Time) error {
	if name == "" && (pattern == nil || *pattern == "") {
		return domainerror.NewObligationError(
			domainerror.ErrCodeObligationNameRequired,
			"obligation name or pattern is required",
			domainerror.ErrObligationNameRequired,
		)
	}

	if !valueobject.Recurrence(recurrence).Valid() {
		return domainerror.NewObligationError(
			domainerror.ErrCodeInvalidRecurrence,
			"invalid recurrence type",
			domainerror.ErrInvalidRecurrence,
		)
	}

	switch entity.ObligationKind(kind) {
	case entity.ObligationKindExpense, entity.ObligationKindIncome:
	default:
		return domainerror.NewObligationError(
			domainerror.ErrCodeInvalidObligationKind,
			"invalid obligation kind",
			domainerror.ErrInvalidObligationKind,
		)
	}

	if nextDue.IsZero() {
		return domainerror.NewObligationError(
			domainerror.ErrCodeInvalidNextDue,
			"invalid next due date",
			domainerror.ErrInvalidNextDue,
		)
	}

	return nil
}
