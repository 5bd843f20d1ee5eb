// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

// obligationRepository implements the adapter.ObligationRepository interface.
type obligationRepository struct {
	db *gorm.DB
}

// NewObligationRepository creates a new obligation repository instance.
func NewObligationRepository(db *gorm.DB) adapter.ObligationRepository {
	return &obligationRepository{
		db: db,
	}
}

// Create persists a new obligation.
func (r *obligationRepository) Create(ctx context.Context, ob *entity.Obligation) error {
	return r.db.WithContext(ctx).Create(model.ObligationFromEntity(ob)).Error
}

// GetByID retrieves an obligation by ID.
func (r *obligationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Obligation, error) {
	var m model.ObligationModel

	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrObligationNotFound
		}
		return nil, err
	}

	return m.ToEntity(), nil
}

// ListByPartnership retrieves all obligations of a partnership.
func (r *obligationRepository) ListByPartnership(ctx context.Context, partnershipID uuid.UUID, activeOnly bool) ([]*entity.Obligation, error) {
	query := r.db.WithContext(ctx).
		Where("partnership_id = ?", partnershipID).
		Order("next_due ASC")

	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []model.ObligationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return toEntities(models), nil
}

// ListMatchable retrieves the active obligations of a partnership that carry
// a merchant identifier, filtered by kind.
func (r *obligationRepository) ListMatchable(ctx context.Context, partnershipID uuid.UUID, kind entity.ObligationKind) ([]*entity.Obligation, error) {
	var models []model.ObligationModel

	err := r.db.WithContext(ctx).
		Where("partnership_id = ?", partnershipID).
		Where("active = ?", true).
		Where("kind = ?", string(kind)).
		Where("name != '' OR (merchant_pattern IS NOT NULL AND merchant_pattern != '')").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return toEntities(models), nil
}

// Update persists changes to an obligation.
func (r *obligationRepository) Update(ctx context.Context, ob *entity.Obligation) error {
	return r.db.WithContext(ctx).Save(model.ObligationFromEntity(ob)).Error
}

// UpdateNextDue moves the obligation's next_due pointer.
func (r *obligationRepository) UpdateNextDue(ctx context.Context, id uuid.UUID, nextDue time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ObligationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"next_due":   nextDue,
			"updated_at": time.Now().UTC(),
		}).Error
}

// Deactivate soft-disables an obligation.
func (r *obligationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ObligationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now().UTC(),
		}).Error
}

func toEntities(models []model.ObligationModel) []*entity.Obligation {
	obligations := make([]*entity.Obligation, len(models))
	for i := range models {
		obligations[i] = models[i].ToEntity()
	}
	return obligations
}
