// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Match binds one transaction to one obligation for one billing period. At
// most one match may exist per (obligation, transaction) pair; that
// uniqueness constraint is what the webhook idempotency logic leans on.
// Matches are insert-only and never mutated.
type Match struct {
	ID            uuid.UUID
	ObligationID  uuid.UUID
	TransactionID uuid.UUID
	Confidence    float64
	ForPeriod     string // ISO date of the billing period start, YYYY-MM-DD
	MatchedAt     time.Time
}

// NewMatch creates a new Match entity.
func NewMatch(obligationID, transactionID uuid.UUID, confidence float64, forPeriod string) *Match {
	return &Match{
		ID:            uuid.New(),
		ObligationID:  obligationID,
		TransactionID: transactionID,
		Confidence:    confidence,
		ForPeriod:     forPeriod,
		MatchedAt:     time.Now().UTC(),
	}
}
