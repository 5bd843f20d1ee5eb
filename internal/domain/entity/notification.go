// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationType identifies the category of a notification.
type NotificationType string

const (
	// NotificationTypePriceChange fires when a merchant-matched transaction
	// falls outside the obligation's amount tolerance.
	NotificationTypePriceChange NotificationType = "price_change"
)

// DeliveryStatus tracks the delivery lifecycle of a notification.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
	DeliveryStatusSkipped DeliveryStatus = "skipped" // user has the category disabled
)

// maxDeliveryAttempts bounds retries for transient delivery failures.
const maxDeliveryAttempts = 3

// Notification is an alert produced by the matching engine, e.g. a detected
// price change on a recurring obligation. It is always recorded when
// detected; the user's notification preference gates delivery only, so
// re-enabling the category does not require re-scanning history.
type Notification struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Type           NotificationType
	ObligationID   uuid.UUID
	TransactionID  uuid.UUID
	ExpectedAmount decimal.Decimal
	ObservedAmount decimal.Decimal
	ActionedAt     *time.Time
	DeliveryStatus DeliveryStatus
	Attempts       int
	LastError      string
	SentAt         *time.Time
	ProviderID     string // message ID at the delivery provider
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPriceChangeNotification creates a price-change notification for a user.
func NewPriceChangeNotification(
	userID, obligationID, transactionID uuid.UUID,
	expected, observed decimal.Decimal,
) *Notification {
	now := time.Now().UTC()

	return &Notification{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           NotificationTypePriceChange,
		ObligationID:   obligationID,
		TransactionID:  transactionID,
		ExpectedAmount: expected,
		ObservedAmount: observed,
		DeliveryStatus: DeliveryStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsActioned reports whether the user has acted on the notification.
func (n *Notification) IsActioned() bool {
	return n.ActionedAt != nil
}

// MarkActioned records that the user acted on the notification.
func (n *Notification) MarkActioned() {
	now := time.Now().UTC()
	n.ActionedAt = &now
	n.UpdatedAt = now
}

// MarkSent records a successful delivery.
func (n *Notification) MarkSent(providerID string) {
	now := time.Now().UTC()
	n.DeliveryStatus = DeliveryStatusSent
	n.ProviderID = providerID
	n.SentAt = &now
	n.UpdatedAt = now
}

// MarkSkipped records that delivery was suppressed by user preference.
func (n *Notification) MarkSkipped() {
	n.DeliveryStatus = DeliveryStatusSkipped
	n.UpdatedAt = time.Now().UTC()
}

// MarkFailed records a delivery failure. Transient failures stay pending
// until the attempt budget runs out; permanent ones fail immediately.
func (n *Notification) MarkFailed(err error, permanent bool) {
	n.Attempts++
	if err != nil {
		n.LastError = err.Error()
	}
	if permanent || n.Attempts >= maxDeliveryAttempts {
		n.DeliveryStatus = DeliveryStatusFailed
	} else {
		n.DeliveryStatus = DeliveryStatusPending
	}
	n.UpdatedAt = time.Now().UTC()
}
