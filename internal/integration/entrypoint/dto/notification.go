// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pairfin/backend/internal/domain/entity"
)

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	ObligationID   string     `json:"obligation_id"`
	TransactionID  string     `json:"transaction_id"`
	ExpectedAmount string     `json:"expected_amount"`
	ObservedAmount string     `json:"observed_amount"`
	ActionedAt     *time.Time `json:"actioned_at,omitempty"`
	DeliveryStatus string     `json:"delivery_status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ListNotificationsResponse represents the response for listing notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToNotificationResponse converts a domain Notification entity to its DTO.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID.String(),
		Type:           string(n.Type),
		ObligationID:   n.ObligationID.String(),
		TransactionID:  n.TransactionID.String(),
		ExpectedAmount: n.ExpectedAmount.StringFixed(2),
		ObservedAmount: n.ObservedAmount.StringFixed(2),
		ActionedAt:     n.ActionedAt,
		DeliveryStatus: string(n.DeliveryStatus),
		CreatedAt:      n.CreatedAt,
	}
}
