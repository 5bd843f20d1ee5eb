// Package notification contains notification management use cases.
package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
)

// ListNotificationsInput represents the input for listing notifications.
type ListNotificationsInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListNotificationsOutput represents the result of listing notifications.
type ListNotificationsOutput struct {
	Notifications []*entity.Notification
}

// ListNotificationsUseCase handles listing a user's notifications.
type ListNotificationsUseCase struct {
	notifications adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notifications adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notifications: notifications}
}

// Execute lists the notifications, newest first.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) (*ListNotificationsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	notifications, err := uc.notifications.ListByUser(ctx, input.UserID, limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return &ListNotificationsOutput{Notifications: notifications}, nil
}
