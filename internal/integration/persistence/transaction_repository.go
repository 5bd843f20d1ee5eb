// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// GetByID retrieves a transaction by ID.
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var m model.TransactionModel

	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, err
	}

	return m.ToEntity(), nil
}

// ListByAccounts retrieves transactions on the given accounts, newest first.
// The effective date is settled_at when present, created_at otherwise, so
// the since filter applies to COALESCE(settled_at, created_at).
func (r *transactionRepository) ListByAccounts(
	ctx context.Context,
	accountIDs []uuid.UUID,
	since *time.Time,
	sign adapter.AmountSign,
) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Order("COALESCE(settled_at, created_at) DESC")

	if since != nil {
		query = query.Where("COALESCE(settled_at, created_at) >= ?", *since)
	}

	switch sign {
	case adapter.AmountNegative:
		query = query.Where("amount < 0")
	case adapter.AmountPositive:
		query = query.Where("amount > 0")
	}

	var models []model.TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	txns := make([]*entity.Transaction, len(models))
	for i := range models {
		txns[i] = models[i].ToEntity()
	}

	return txns, nil
}

// UpsertByExternalID inserts the transaction unless one with the same
// external ID already exists on the account, returning the stored row
// either way. The conflict-ignoring insert keeps webhook redelivery from
// duplicating transactions without a read-then-insert race.
func (r *transactionRepository) UpsertByExternalID(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, error) {
	m := model.TransactionFromEntity(txn)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "account_id"},
				{Name: "external_id"},
			},
			DoNothing: true,
		}).
		Create(m)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 1 {
		return m.ToEntity(), nil
	}

	// Redelivery: fetch the row the earlier delivery stored.
	var existing model.TransactionModel
	err := r.db.WithContext(ctx).
		First(&existing, "account_id = ? AND external_id = ?", txn.AccountID, txn.ExternalID).Error
	if err != nil {
		return nil, err
	}

	return existing.ToEntity(), nil
}

// MarkIncome flags a transaction as matched income.
func (r *transactionRepository) MarkIncome(ctx context.Context, id uuid.UUID, incomeType *string) error {
	return r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_income":   true,
			"income_type": incomeType,
			"updated_at":  time.Now().UTC(),
		}).Error
}
