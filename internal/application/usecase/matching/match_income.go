// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// MatchIncomeOutput represents the result of the income matching path.
type MatchIncomeOutput struct {
	MatchedObligationIDs []uuid.UUID
	Advanced             int
	FailureReason        string
}

// MatchIncomeUseCase is the income mirror of the streaming expense path:
// positive-amount transactions are evaluated against the partnership's
// income obligations (salary, benefits), and a successful match additionally
// flags the transaction as income. Idempotency works exactly as on the
// expense side: side effects follow the actually-inserted rowset.
type MatchIncomeUseCase struct {
	transactions adapter.TransactionRepository
	accounts     adapter.AccountRepository
	obligations  adapter.ObligationRepository
	matches      adapter.MatchRepository
	advancer     *DueDateAdvancer
	config       valueobject.MatchingConfig
}

// NewMatchIncomeUseCase creates a new MatchIncomeUseCase instance.
func NewMatchIncomeUseCase(
	transactions adapter.TransactionRepository,
	accounts adapter.AccountRepository,
	obligations adapter.ObligationRepository,
	matches adapter.MatchRepository,
	advancer *DueDateAdvancer,
	config valueobject.MatchingConfig,
) *MatchIncomeUseCase {
	return &MatchIncomeUseCase{
		transactions: transactions,
		accounts:     accounts,
		obligations:  obligations,
		matches:      matches,
		advancer:     advancer,
		config:       config,
	}
}

// Execute matches one income transaction. Failures are reported in the
// output, never as an error.
func (uc *MatchIncomeUseCase) Execute(ctx context.Context, txn *entity.Transaction) *MatchIncomeOutput {
	logger := slog.With("transaction_id", txn.ID)

	account, err := uc.accounts.GetByID(ctx, txn.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return &MatchIncomeOutput{FailureReason: domainerror.ErrAccountNotFound.Error()}
		}
		logger.Error("Income match failed to resolve account", "error", err)
		return &MatchIncomeOutput{FailureReason: err.Error()}
	}

	candidates, err := uc.obligations.ListMatchable(ctx, account.PartnershipID, entity.ObligationKindIncome)
	if err != nil {
		logger.Error("Income match failed to list obligations", "error", err)
		return &MatchIncomeOutput{FailureReason: err.Error()}
	}

	compatible, _ := partitionObligations(uc.config, txn, candidates)

	obligationsByID := make(map[uuid.UUID]*entity.Obligation)
	var rows []*entity.Match
	for _, c := range compatible {
		matched, err := uc.matches.ExistsForPair(ctx, c.Obligation.ID, txn.ID)
		if err != nil {
			logger.Error("Income match failed existing-pair check", "error", err)
			return &MatchIncomeOutput{FailureReason: err.Error()}
		}
		if matched {
			continue
		}

		obligationsByID[c.Obligation.ID] = c.Obligation
		rows = append(rows, entity.NewMatch(
			c.Obligation.ID, txn.ID,
			valueobject.MatchConfidence,
			c.Obligation.Recurrence.PeriodKey(txn.EffectiveDate()),
		))
	}

	if len(rows) == 0 {
		return &MatchIncomeOutput{}
	}

	inserted, err := uc.matches.InsertIgnoringDuplicates(ctx, rows)
	if err != nil {
		logger.Error("Income match failed to persist matches", "error", err)
		return &MatchIncomeOutput{FailureReason: err.Error()}
	}

	out := &MatchIncomeOutput{}
	for _, m := range inserted {
		out.MatchedObligationIDs = append(out.MatchedObligationIDs, m.ObligationID)
		ob := obligationsByID[m.ObligationID]

		if err := uc.transactions.MarkIncome(ctx, txn.ID, ob.IncomeType); err != nil {
			logger.Error("Income match failed to flag transaction",
				"obligation_id", m.ObligationID,
				"error", err,
			)
		}

		advanced, err := uc.advancer.CatchUpStreaming(ctx, ob, txn.EffectiveDate())
		if err != nil {
			logger.Error("Income match failed to advance due date",
				"obligation_id", m.ObligationID,
				"error", err,
			)
			continue
		}
		if advanced {
			out.Advanced++
		}
	}

	return out
}
