// Package error defines domain-specific errors for the PairFin application.
package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotAuthorizedForNotification is returned when the notification belongs to another user.
	ErrNotAuthorizedForNotification = errors.New("not authorized to access notification")
)

// NotificationErrorCode defines error codes for notification errors.
// Format: NOTIF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	ErrCodeNotificationNotFound      NotificationErrorCode = "NOTIF-010001"
	ErrCodeNotAuthorizedNotification NotificationErrorCode = "NOTIF-010002"

	// Delivery errors (02XXXX)
	ErrCodePermanentDeliveryFailure NotificationErrorCode = "NOTIF-020001"
	ErrCodeTemporaryDeliveryFailure NotificationErrorCode = "NOTIF-020002"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
