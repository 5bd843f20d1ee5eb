// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// HasUnactioned reports whether any member of the partnership still has
	// an unactioned notification of the given type for the obligation. This
	// is the dedup check of the price-change path.
	HasUnactioned(ctx context.Context, obligationID uuid.UUID, notificationType entity.NotificationType) (bool, error)

	// GetByID retrieves a notification by ID.
	// Returns domain ErrNotificationNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// ListPendingDelivery retrieves up to limit notifications awaiting delivery.
	ListPendingDelivery(ctx context.Context, limit int) ([]*entity.Notification, error)

	// Update persists delivery/actioned state changes.
	Update(ctx context.Context, notification *entity.Notification) error
}
