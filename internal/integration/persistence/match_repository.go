// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

// matchRepository implements the adapter.MatchRepository interface.
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository instance.
func NewMatchRepository(db *gorm.DB) adapter.MatchRepository {
	return &matchRepository{
		db: db,
	}
}

// InsertIgnoringDuplicates inserts matches with ON CONFLICT DO NOTHING on
// the (obligation_id, transaction_id) unique index and returns the rows the
// database actually accepted. Rows are inserted one at a time so each
// insert's RowsAffected tells exactly which pairs were new; under duplicate
// webhook delivery the losing call gets RowsAffected == 0 for every row and
// returns an empty slice. This is the load-bearing idempotency mechanism —
// a read-then-insert here would reintroduce the check-then-act race.
func (r *matchRepository) InsertIgnoringDuplicates(ctx context.Context, matches []*entity.Match) ([]*entity.Match, error) {
	inserted := make([]*entity.Match, 0, len(matches))

	for _, match := range matches {
		m := model.MatchFromEntity(match)

		result := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "obligation_id"},
					{Name: "transaction_id"},
				},
				DoNothing: true,
			}).
			Create(m)
		if result.Error != nil {
			return nil, result.Error
		}

		if result.RowsAffected == 1 {
			inserted = append(inserted, match)
		}
	}

	return inserted, nil
}

// ListMatchedTransactionIDs returns the set of transaction IDs already
// matched to the obligation.
func (r *matchRepository) ListMatchedTransactionIDs(ctx context.Context, obligationID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID

	err := r.db.WithContext(ctx).
		Model(&model.MatchModel{}).
		Where("obligation_id = ?", obligationID).
		Pluck("transaction_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}

// ExistsForPair reports whether a match row already binds the pair.
func (r *matchRepository) ExistsForPair(ctx context.Context, obligationID, transactionID uuid.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.MatchModel{}).
		Where("obligation_id = ? AND transaction_id = ?", obligationID, transactionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ListByObligation retrieves all matches of an obligation, newest first.
func (r *matchRepository) ListByObligation(ctx context.Context, obligationID uuid.UUID) ([]*entity.Match, error) {
	var models []model.MatchModel

	err := r.db.WithContext(ctx).
		Where("obligation_id = ?", obligationID).
		Order("matched_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	matches := make([]*entity.Match, len(models))
	for i := range models {
		matches[i] = models[i].ToEntity()
	}

	return matches, nil
}
