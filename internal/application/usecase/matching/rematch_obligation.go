// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// RematchObligationInput represents the input for a batch re-match sweep.
type RematchObligationInput struct {
	ObligationID uuid.UUID
	// WindowMonths restricts the sweep to the last N months of history.
	// Zero means unbounded.
	WindowMonths int
}

// RematchObligationOutput represents the result of a batch re-match sweep.
type RematchObligationOutput struct {
	Matched int
	// FailureReason is set on soft failure ("obligation not found", "no
	// merchant name or pattern set", "no accounts found", persistence
	// errors). The sweep never aborts its caller: an obligation creation
	// still succeeds when the follow-up match fails.
	FailureReason string
}

// Failed reports whether the sweep ended in a soft failure.
func (o *RematchObligationOutput) Failed() bool {
	return o.FailureReason != ""
}

// RematchObligationUseCase evaluates an obligation against the full
// transaction history of its partnership's accounts and persists the
// matches. It is the batch-mode entry point, triggered on obligation
// creation and on explicit "re-match all history" requests, and is safe to
// re-invoke from scratch: persistence is conflict-ignoring and only rows
// actually inserted drive side effects.
type RematchObligationUseCase struct {
	obligations  adapter.ObligationRepository
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	matches      adapter.MatchRepository
	matchRuns    adapter.MatchRunRepository
	advancer     *DueDateAdvancer
	config       valueobject.MatchingConfig
}

// NewRematchObligationUseCase creates a new RematchObligationUseCase instance.
func NewRematchObligationUseCase(
	obligations adapter.ObligationRepository,
	accounts adapter.AccountRepository,
	transactions adapter.TransactionRepository,
	matches adapter.MatchRepository,
	matchRuns adapter.MatchRunRepository,
	advancer *DueDateAdvancer,
	config valueobject.MatchingConfig,
) *RematchObligationUseCase {
	return &RematchObligationUseCase{
		obligations:  obligations,
		accounts:     accounts,
		transactions: transactions,
		matches:      matches,
		matchRuns:    matchRuns,
		advancer:     advancer,
		config:       config,
	}
}

// Execute runs the sweep. Failures are reported in the output, never as an
// error: callers surface them without rolling back their own work.
func (uc *RematchObligationUseCase) Execute(ctx context.Context, input RematchObligationInput) *RematchObligationOutput {
	logger := slog.With("obligation_id", input.ObligationID)

	ob, err := uc.obligations.GetByID(ctx, input.ObligationID)
	if err != nil {
		if errors.Is(err, domainerror.ErrObligationNotFound) {
			return &RematchObligationOutput{FailureReason: domainerror.ErrObligationNotFound.Error()}
		}
		logger.Error("Batch re-match failed to load obligation", "error", err)
		return &RematchObligationOutput{FailureReason: err.Error()}
	}

	if !ob.HasMatchCriteria() {
		return &RematchObligationOutput{FailureReason: domainerror.ErrNoMatchCriteria.Error()}
	}

	accounts, err := uc.accounts.ListByPartnership(ctx, ob.PartnershipID)
	if err != nil {
		logger.Error("Batch re-match failed to list accounts", "error", err)
		return &RematchObligationOutput{FailureReason: err.Error()}
	}
	if len(accounts) == 0 {
		return &RematchObligationOutput{FailureReason: domainerror.ErrNoAccountsFound.Error()}
	}

	accountIDs := make([]uuid.UUID, len(accounts))
	for i, a := range accounts {
		accountIDs[i] = a.ID
	}

	var since *time.Time
	if input.WindowMonths > 0 {
		s := time.Now().AddDate(0, -input.WindowMonths, 0)
		since = &s
	}

	sign := adapter.AmountNegative
	if ob.Kind == entity.ObligationKindIncome {
		sign = adapter.AmountPositive
	}

	txns, err := uc.transactions.ListByAccounts(ctx, accountIDs, since, sign)
	if err != nil {
		logger.Error("Batch re-match failed to list transactions", "error", err)
		return &RematchObligationOutput{FailureReason: err.Error()}
	}

	existing, err := uc.matches.ListMatchedTransactionIDs(ctx, ob.ID)
	if err != nil {
		logger.Error("Batch re-match failed to list existing matches", "error", err)
		return &RematchObligationOutput{FailureReason: err.Error()}
	}

	effectiveByTxn := make(map[uuid.UUID]time.Time)
	var rows []*entity.Match
	for _, txn := range selectTransactions(uc.config, ob, txns) {
		if _, matched := existing[txn.ID]; matched {
			continue
		}
		effective := txn.EffectiveDate()
		effectiveByTxn[txn.ID] = effective
		rows = append(rows, entity.NewMatch(
			ob.ID, txn.ID,
			valueobject.MatchConfidence,
			ob.Recurrence.PeriodKey(effective),
		))
	}

	if len(rows) == 0 {
		return &RematchObligationOutput{}
	}

	inserted, err := uc.matches.InsertIgnoringDuplicates(ctx, rows)
	if err != nil {
		logger.Error("Batch re-match failed to persist matches", "error", err)
		return &RematchObligationOutput{FailureReason: err.Error()}
	}
	if len(inserted) == 0 {
		return &RematchObligationOutput{}
	}

	// One catch-up against the latest matched date, not one per row.
	var latest time.Time
	txnIDs := make([]uuid.UUID, len(inserted))
	for i, m := range inserted {
		txnIDs[i] = m.TransactionID
		if effective := effectiveByTxn[m.TransactionID]; effective.After(latest) {
			latest = effective
		}
	}

	if _, err := uc.advancer.CatchUpBatch(ctx, ob, latest); err != nil {
		// Matches are already in; the next run will catch the pointer up.
		logger.Error("Batch re-match failed to advance due date", "error", err)
	}

	if err := uc.matchRuns.Create(ctx, entity.NewMatchRun(ob.ID, txnIDs, input.WindowMonths)); err != nil {
		logger.Error("Batch re-match failed to record audit row", "error", err)
	}

	logger.Info("Batch re-match completed",
		"matched", len(inserted),
		"next_due", ob.NextDue.Format("2006-01-02"),
	)

	return &RematchObligationOutput{Matched: len(inserted)}
}
