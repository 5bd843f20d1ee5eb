// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pairfin/backend/internal/domain/entity"
)

// MatchRunModel represents the match_runs audit table in the database.
type MatchRunModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ObligationID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	MatchedCount   int            `gorm:"not null"`
	TransactionIDs pq.StringArray `gorm:"type:uuid[]"`
	WindowMonths   int            `gorm:"default:0"`
	RanAt          time.Time      `gorm:"not null;index"`

	Obligation *ObligationModel `gorm:"foreignKey:ObligationID;references:ID"`
}

// TableName returns the table name for the MatchRunModel.
func (MatchRunModel) TableName() string {
	return "match_runs"
}

// ToEntity converts a MatchRunModel to a domain MatchRun entity.
func (m *MatchRunModel) ToEntity() *entity.MatchRun {
	ids := make([]uuid.UUID, 0, len(m.TransactionIDs))
	for _, raw := range m.TransactionIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	return &entity.MatchRun{
		ID:             m.ID,
		ObligationID:   m.ObligationID,
		MatchedCount:   m.MatchedCount,
		TransactionIDs: ids,
		WindowMonths:   m.WindowMonths,
		RanAt:          m.RanAt,
	}
}

// MatchRunFromEntity creates a MatchRunModel from a domain MatchRun entity.
func MatchRunFromEntity(run *entity.MatchRun) *MatchRunModel {
	ids := make(pq.StringArray, len(run.TransactionIDs))
	for i, id := range run.TransactionIDs {
		ids[i] = id.String()
	}

	return &MatchRunModel{
		ID:             run.ID,
		ObligationID:   run.ObligationID,
		MatchedCount:   run.MatchedCount,
		TransactionIDs: ids,
		WindowMonths:   run.WindowMonths,
		RanAt:          run.RanAt,
	}
}
