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

// notificationRepository implements the adapter.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create persists a new notification.
func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(model.NotificationFromEntity(n)).Error
}

// HasUnactioned reports whether any unactioned notification of the given
// type references the obligation, across all partnership members.
func (r *notificationRepository) HasUnactioned(ctx context.Context, obligationID uuid.UUID, notificationType entity.NotificationType) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("obligation_id = ?", obligationID).
		Where("type = ?", string(notificationType)).
		Where("actioned_at IS NULL").
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetByID retrieves a notification by ID.
func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var m model.NotificationModel

	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNotificationNotFound
		}
		return nil, err
	}

	return m.ToEntity(), nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var models []model.NotificationModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return notificationsToEntities(models), nil
}

// ListPendingDelivery retrieves up to limit notifications awaiting delivery,
// oldest first so backlog drains in order.
func (r *notificationRepository) ListPendingDelivery(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var models []model.NotificationModel

	err := r.db.WithContext(ctx).
		Where("delivery_status = ?", string(entity.DeliveryStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return notificationsToEntities(models), nil
}

// Update persists delivery/actioned state changes.
func (r *notificationRepository) Update(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Save(model.NotificationFromEntity(n)).Error
}

func notificationsToEntities(models []model.NotificationModel) []*entity.Notification {
	notifications := make([]*entity.Notification, len(models))
	for i := range models {
		notifications[i] = models[i].ToEntity()
	}
	return notifications
}
