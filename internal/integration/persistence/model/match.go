// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// MatchModel represents the expense_matches table in the database. The
// composite unique index on (obligation_id, transaction_id) is the
// constraint the engine's idempotency rests on; conflict-ignoring inserts
// target it.
type MatchModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ObligationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_obligation_transaction;index"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_obligation_transaction;index"`
	Confidence    float64   `gorm:"type:decimal(4,3);not null"`
	ForPeriod     string    `gorm:"type:varchar(10);not null"`
	MatchedAt     time.Time `gorm:"not null"`

	Obligation  *ObligationModel  `gorm:"foreignKey:ObligationID;references:ID"`
	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the MatchModel.
func (MatchModel) TableName() string {
	return "expense_matches"
}

// ToEntity converts a MatchModel to a domain Match entity.
func (m *MatchModel) ToEntity() *entity.Match {
	return &entity.Match{
		ID:            m.ID,
		ObligationID:  m.ObligationID,
		TransactionID: m.TransactionID,
		Confidence:    m.Confidence,
		ForPeriod:     m.ForPeriod,
		MatchedAt:     m.MatchedAt,
	}
}

// MatchFromEntity creates a MatchModel from a domain Match entity.
func MatchFromEntity(match *entity.Match) *MatchModel {
	return &MatchModel{
		ID:            match.ID,
		ObligationID:  match.ObligationID,
		TransactionID: match.TransactionID,
		Confidence:    match.Confidence,
		ForPeriod:     match.ForPeriod,
		MatchedAt:     match.MatchedAt,
	}
}
