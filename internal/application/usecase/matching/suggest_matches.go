// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// defaultSuggestionLookbackMonths bounds how far back the suggestion scan goes.
const defaultSuggestionLookbackMonths = 3

// SuggestMatchesInput represents the input for the match suggestion flow.
type SuggestMatchesInput struct {
	ObligationID   uuid.UUID
	LookbackMonths int // 0 = default
}

// MatchSuggestion is one scored transaction suggestion.
type MatchSuggestion struct {
	Transaction *entity.Transaction
	Breakdown   valueobject.ConfidenceBreakdown
}

// SuggestMatchesOutput represents the ranked suggestions.
type SuggestMatchesOutput struct {
	Suggestions []MatchSuggestion
}

// SuggestMatchesUseCase ranks recent transactions against one obligation
// using the weighted confidence scorer. It backs the creation-time
// suggestion UI and is deliberately a different mechanism from the binary
// merchant+tolerance gate the reconciliation paths persist with; the two
// must not be conflated.
type SuggestMatchesUseCase struct {
	obligations  adapter.ObligationRepository
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	config       valueobject.MatchingConfig
}

// NewSuggestMatchesUseCase creates a new SuggestMatchesUseCase instance.
func NewSuggestMatchesUseCase(
	obligations adapter.ObligationRepository,
	accounts adapter.AccountRepository,
	transactions adapter.TransactionRepository,
	config valueobject.MatchingConfig,
) *SuggestMatchesUseCase {
	return &SuggestMatchesUseCase{
		obligations:  obligations,
		accounts:     accounts,
		transactions: transactions,
		config:       config,
	}
}

// Execute returns the transactions scoring at or above the minimum
// suggestion confidence, best first.
func (uc *SuggestMatchesUseCase) Execute(ctx context.Context, input SuggestMatchesInput) (*SuggestMatchesOutput, error) {
	ob, err := uc.obligations.GetByID(ctx, input.ObligationID)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accounts.ListByPartnership(ctx, ob.PartnershipID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return &SuggestMatchesOutput{}, nil
	}

	accountIDs := make([]uuid.UUID, len(accounts))
	for i, a := range accounts {
		accountIDs[i] = a.ID
	}

	lookback := input.LookbackMonths
	if lookback <= 0 {
		lookback = defaultSuggestionLookbackMonths
	}
	since := time.Now().AddDate(0, -lookback, 0)

	sign := adapter.AmountNegative
	if ob.Kind == entity.ObligationKindIncome {
		sign = adapter.AmountPositive
	}

	txns, err := uc.transactions.ListByAccounts(ctx, accountIDs, &since, sign)
	if err != nil {
		return nil, err
	}

	var suggestions []MatchSuggestion
	for _, txn := range txns {
		breakdown := valueobject.ScoreConfidence(valueobject.ConfidenceInput{
			Description:     txn.Description,
			Amount:          txn.Amount,
			Date:            txn.EffectiveDate(),
			MerchantName:    ob.Name,
			MerchantPattern: ob.MerchantPattern,
			ExpectedAmount:  ob.ExpectedAmount,
			NextDue:         ob.NextDue,
		})
		if breakdown.Total < uc.config.MinSuggestionConfidence {
			continue
		}
		suggestions = append(suggestions, MatchSuggestion{
			Transaction: txn,
			Breakdown:   breakdown,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Breakdown.Total > suggestions[j].Breakdown.Total
	})

	return &SuggestMatchesOutput{Suggestions: suggestions}, nil
}
