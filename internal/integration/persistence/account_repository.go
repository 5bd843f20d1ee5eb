// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// GetByID retrieves an account by ID.
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var m model.AccountModel

	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, err
	}

	return m.ToEntity(), nil
}

// GetByExternalID resolves the account a webhook payload refers to.
func (r *accountRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Account, error) {
	var m model.AccountModel

	err := r.db.WithContext(ctx).First(&m, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, err
	}

	return m.ToEntity(), nil
}

// ListByPartnership retrieves all accounts owned by a partnership.
func (r *accountRepository) ListByPartnership(ctx context.Context, partnershipID uuid.UUID) ([]*entity.Account, error) {
	var models []model.AccountModel

	err := r.db.WithContext(ctx).
		Where("partnership_id = ?", partnershipID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, len(models))
	for i := range models {
		accounts[i] = models[i].ToEntity()
	}

	return accounts, nil
}
