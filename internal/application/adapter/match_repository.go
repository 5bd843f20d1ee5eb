// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// MatchRepository defines the interface for match persistence operations.
// Matches are insert-only; the (obligation_id, transaction_id) uniqueness
// constraint carries the engine's idempotency.
type MatchRepository interface {
	// InsertIgnoringDuplicates inserts the given matches with
	// conflict-ignore semantics on the pair constraint and returns the rows
	// that were actually inserted. Under concurrent duplicate delivery only
	// the winning insert sees its row in the result; losers get an empty
	// slice and must take no further action. Never read-then-insert.
	InsertIgnoringDuplicates(ctx context.Context, matches []*entity.Match) ([]*entity.Match, error)

	// ListMatchedTransactionIDs returns the IDs of transactions already
	// matched to the obligation. Used by the batch path to pre-filter; the
	// insert itself remains conflict-safe.
	ListMatchedTransactionIDs(ctx context.Context, obligationID uuid.UUID) (map[uuid.UUID]struct{}, error)

	// ExistsForPair reports whether a match row already binds the pair.
	ExistsForPair(ctx context.Context, obligationID, transactionID uuid.UUID) (bool, error)

	// ListByObligation retrieves all matches of an obligation, newest first.
	ListByObligation(ctx context.Context, obligationID uuid.UUID) ([]*entity.Match, error)
}

// MatchRunRepository defines the interface for batch run audit records.
type MatchRunRepository interface {
	// Create persists the audit record of one batch sweep.
	Create(ctx context.Context, run *entity.MatchRun) error

	// ListByObligation retrieves past runs for an obligation, newest first.
	ListByObligation(ctx context.Context, obligationID uuid.UUID, limit int) ([]*entity.MatchRun, error)
}
