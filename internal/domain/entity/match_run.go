// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MatchRun is an audit record of one batch re-match sweep over an
// obligation's transaction history.
type MatchRun struct {
	ID             uuid.UUID
	ObligationID   uuid.UUID
	MatchedCount   int
	TransactionIDs []uuid.UUID // transactions newly matched by this run
	WindowMonths   int         // 0 = unbounded
	RanAt          time.Time
}

// NewMatchRun creates an audit record for a completed batch run.
func NewMatchRun(obligationID uuid.UUID, transactionIDs []uuid.UUID, windowMonths int) *MatchRun {
	return &MatchRun{
		ID:             uuid.New(),
		ObligationID:   obligationID,
		MatchedCount:   len(transactionIDs),
		TransactionIDs: transactionIDs,
		WindowMonths:   windowMonths,
		RanAt:          time.Now().UTC(),
	}
}
