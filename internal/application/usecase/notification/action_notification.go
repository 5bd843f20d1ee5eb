// Package notification contains notification management use cases.
package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	domainerror "github.com/pairfin/backend/internal/domain/error"
)

// ActionNotificationInput represents the input for actioning a notification.
type ActionNotificationInput struct {
	NotificationID uuid.UUID
	UserID         uuid.UUID
}

// ActionNotificationUseCase marks a notification as actioned by the user.
// Actioning a price-change notification is what re-arms detection for the
// obligation: until then, repeat events are deduplicated away.
type ActionNotificationUseCase struct {
	notifications adapter.NotificationRepository
}

// NewActionNotificationUseCase creates a new ActionNotificationUseCase instance.
func NewActionNotificationUseCase(notifications adapter.NotificationRepository) *ActionNotificationUseCase {
	return &ActionNotificationUseCase{notifications: notifications}
}

// Execute marks the notification as actioned after an ownership check.
func (uc *ActionNotificationUseCase) Execute(ctx context.Context, input ActionNotificationInput) error {
	notification, err := uc.notifications.GetByID(ctx, input.NotificationID)
	if err != nil {
		return err
	}

	if notification.UserID != input.UserID {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeNotAuthorizedNotification,
			"not authorized to access notification",
			domainerror.ErrNotAuthorizedForNotification,
		)
	}

	if notification.IsActioned() {
		return nil
	}

	notification.MarkActioned()
	return uc.notifications.Update(ctx, notification)
}
