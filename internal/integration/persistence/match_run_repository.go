// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

// matchRunRepository implements the adapter.MatchRunRepository interface.
type matchRunRepository struct {
	db *gorm.DB
}

// NewMatchRunRepository creates a new match run repository instance.
func NewMatchRunRepository(db *gorm.DB) adapter.MatchRunRepository {
	return &matchRunRepository{
		db: db,
	}
}

// Create persists the audit record of one batch sweep.
func (r *matchRunRepository) Create(ctx context.Context, run *entity.MatchRun) error {
	return r.db.WithContext(ctx).Create(model.MatchRunFromEntity(run)).Error
}

// ListByObligation retrieves past runs for an obligation, newest first.
func (r *matchRunRepository) ListByObligation(ctx context.Context, obligationID uuid.UUID, limit int) ([]*entity.MatchRun, error) {
	var models []model.MatchRunModel

	err := r.db.WithContext(ctx).
		Where("obligation_id = ?", obligationID).
		Order("ran_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	runs := make([]*entity.MatchRun, len(models))
	for i := range models {
		runs[i] = models[i].ToEntity()
	}

	return runs, nil
}
