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

// ProcessTransactionInput represents one inbound webhook transaction event.
type ProcessTransactionInput struct {
	TransactionID uuid.UUID
}

// ProcessTransactionOutput represents the result of processing one event.
type ProcessTransactionOutput struct {
	// MatchedObligationIDs lists the obligations a match row was actually
	// inserted for by this invocation. Duplicate deliveries see an empty
	// list here even when the transaction matched on the winning delivery.
	MatchedObligationIDs []uuid.UUID
	Advanced             int
	PriceChangeAlerts    int
	RoutedToIncome       bool
	// FailureReason is set on soft failure; webhook ingestion acknowledges
	// the event regardless.
	FailureReason string
}

// Failed reports whether processing ended in a soft failure.
func (o *ProcessTransactionOutput) Failed() bool {
	return o.FailureReason != ""
}

// ProcessTransactionUseCase is the streaming-mode entry point: it evaluates
// one webhook-delivered transaction against every matchable obligation of
// the owning partnership. It is correct under at-least-once delivery:
// persistence is a conflict-ignoring upsert on the (obligation, transaction)
// uniqueness constraint, and due-date advancement and notifications are
// driven strictly from the rows actually inserted, so the loser of a
// duplicate-delivery race observes an empty insert and does nothing.
type ProcessTransactionUseCase struct {
	transactions adapter.TransactionRepository
	accounts     adapter.AccountRepository
	obligations  adapter.ObligationRepository
	matches      adapter.MatchRepository
	advancer     *DueDateAdvancer
	notifier     *PriceChangeNotifier
	income       *MatchIncomeUseCase
	config       valueobject.MatchingConfig
}

// NewProcessTransactionUseCase creates a new ProcessTransactionUseCase instance.
func NewProcessTransactionUseCase(
	transactions adapter.TransactionRepository,
	accounts adapter.AccountRepository,
	obligations adapter.ObligationRepository,
	matches adapter.MatchRepository,
	advancer *DueDateAdvancer,
	notifier *PriceChangeNotifier,
	income *MatchIncomeUseCase,
	config valueobject.MatchingConfig,
) *ProcessTransactionUseCase {
	return &ProcessTransactionUseCase{
		transactions: transactions,
		accounts:     accounts,
		obligations:  obligations,
		matches:      matches,
		advancer:     advancer,
		notifier:     notifier,
		income:       income,
		config:       config,
	}
}

// Execute processes one transaction event. Failures are reported in the
// output, never as an error: a failed match must not fail the ingestion
// that triggered it.
func (uc *ProcessTransactionUseCase) Execute(ctx context.Context, input ProcessTransactionInput) *ProcessTransactionOutput {
	logger := slog.With("transaction_id", input.TransactionID)

	txn, err := uc.transactions.GetByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return &ProcessTransactionOutput{FailureReason: domainerror.ErrTransactionNotFound.Error()}
		}
		logger.Error("Streaming match failed to load transaction", "error", err)
		return &ProcessTransactionOutput{FailureReason: err.Error()}
	}

	// Positive amounts route to the structurally identical income path.
	if !txn.IsExpense() {
		out := uc.income.Execute(ctx, txn)
		return &ProcessTransactionOutput{
			MatchedObligationIDs: out.MatchedObligationIDs,
			Advanced:             out.Advanced,
			RoutedToIncome:       true,
			FailureReason:        out.FailureReason,
		}
	}

	account, err := uc.accounts.GetByID(ctx, txn.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return &ProcessTransactionOutput{FailureReason: domainerror.ErrAccountNotFound.Error()}
		}
		logger.Error("Streaming match failed to resolve account", "error", err)
		return &ProcessTransactionOutput{FailureReason: err.Error()}
	}

	candidates, err := uc.obligations.ListMatchable(ctx, account.PartnershipID, entity.ObligationKindExpense)
	if err != nil {
		logger.Error("Streaming match failed to list obligations", "error", err)
		return &ProcessTransactionOutput{FailureReason: err.Error()}
	}

	compatible, priceChanged := partitionObligations(uc.config, txn, candidates)

	out := &ProcessTransactionOutput{}
	obligationsByID := make(map[uuid.UUID]*entity.Obligation)

	var rows []*entity.Match
	for _, c := range compatible {
		// Cheap pre-check against redundant evaluation; the insert below is
		// what actually guarantees uniqueness under races.
		matched, err := uc.matches.ExistsForPair(ctx, c.Obligation.ID, txn.ID)
		if err != nil {
			logger.Error("Streaming match failed existing-pair check", "error", err)
			return &ProcessTransactionOutput{FailureReason: err.Error()}
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

	if len(rows) > 0 {
		inserted, err := uc.matches.InsertIgnoringDuplicates(ctx, rows)
		if err != nil {
			logger.Error("Streaming match failed to persist matches", "error", err)
			return &ProcessTransactionOutput{FailureReason: err.Error()}
		}

		for _, m := range inserted {
			out.MatchedObligationIDs = append(out.MatchedObligationIDs, m.ObligationID)

			ob := obligationsByID[m.ObligationID]
			advanced, err := uc.advancer.CatchUpStreaming(ctx, ob, txn.EffectiveDate())
			if err != nil {
				logger.Error("Streaming match failed to advance due date",
					"obligation_id", m.ObligationID,
					"error", err,
				)
				continue
			}
			if advanced {
				out.Advanced++
			}
		}
	}

	for _, c := range priceChanged {
		created, err := uc.notifier.Notify(ctx, c)
		if err != nil {
			logger.Error("Price-change notification failed",
				"obligation_id", c.Obligation.ID,
				"error", err,
			)
			continue
		}
		out.PriceChangeAlerts += created
	}

	if len(out.MatchedObligationIDs) > 0 || out.PriceChangeAlerts > 0 {
		logger.Info("Streaming match completed",
			"matched", len(out.MatchedObligationIDs),
			"advanced", out.Advanced,
			"price_change_alerts", out.PriceChangeAlerts,
		)
	}

	return out
}
