// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"time"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// DueDateAdvancer moves an obligation's next_due pointer forward after a
// successful match. The catch-up loop collapses any number of missed billing
// periods into one write; next_due is monotonically non-decreasing and only
// written when it actually changed.
type DueDateAdvancer struct {
	obligations adapter.ObligationRepository
	config      valueobject.MatchingConfig
}

// NewDueDateAdvancer creates a new DueDateAdvancer instance.
func NewDueDateAdvancer(obligations adapter.ObligationRepository, config valueobject.MatchingConfig) *DueDateAdvancer {
	return &DueDateAdvancer{
		obligations: obligations,
		config:      config,
	}
}

// CatchUpBatch advances the obligation past the latest matched transaction
// date of a batch run. It runs once per run, not once per matched row.
func (a *DueDateAdvancer) CatchUpBatch(ctx context.Context, ob *entity.Obligation, latest time.Time) (bool, error) {
	return a.catchUp(ctx, ob, latest)
}

// CatchUpStreaming advances the obligation past a single matched
// transaction's effective date. A transaction dated more than
// AdvanceGuardDays before the current next_due is ignored: backfilled
// history must not retroactively fast-forward a live due date.
func (a *DueDateAdvancer) CatchUpStreaming(ctx context.Context, ob *entity.Obligation, effective time.Time) (bool, error) {
	guard := ob.NextDue.AddDate(0, 0, -a.config.AdvanceGuardDays)
	if effective.Before(guard) {
		return false, nil
	}
	return a.catchUp(ctx, ob, effective)
}

func (a *DueDateAdvancer) catchUp(ctx context.Context, ob *entity.Obligation, through time.Time) (bool, error) {
	next := ob.Recurrence.CatchUp(ob.NextDue, through)
	if next.Equal(ob.NextDue) {
		return false, nil
	}

	if err := a.obligations.UpdateNextDue(ctx, ob.ID, next); err != nil {
		return false, err
	}

	ob.NextDue = next
	return true, nil
}
