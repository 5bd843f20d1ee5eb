// Package error defines domain-specific errors for the PairFin application.
package error

import "errors"

// Obligation domain errors.
var (
	// ErrInvalidRecurrence is returned when the recurrence type is not one of the supported values.
	ErrInvalidRecurrence = errors.New("invalid recurrence type")

	// ErrInvalidNextDue is returned when the next due date is missing or malformed.
	ErrInvalidNextDue = errors.New("invalid next due date")

	// ErrInvalidObligationKind is returned when the obligation kind is invalid.
	ErrInvalidObligationKind = errors.New("invalid obligation kind")

	// ErrObligationNameRequired is returned when neither a name nor a pattern is provided.
	ErrObligationNameRequired = errors.New("obligation name or pattern is required")

	// ErrNotAuthorizedForObligation is returned when the obligation belongs to another partnership.
	ErrNotAuthorizedForObligation = errors.New("not authorized to access obligation")
)

// ObligationErrorCode defines error codes for obligation errors.
// Format: OBL-XXYYYY where XX is category and YYYY is specific error.
type ObligationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRecurrence      ObligationErrorCode = "OBL-010001"
	ErrCodeInvalidNextDue         ObligationErrorCode = "OBL-010002"
	ErrCodeInvalidObligationKind  ObligationErrorCode = "OBL-010003"
	ErrCodeObligationNameRequired ObligationErrorCode = "OBL-010004"

	// Authorization errors (02XXXX)
	ErrCodeNotAuthorizedObligation ObligationErrorCode = "OBL-020001"
)

// ObligationError represents an obligation error with code and message.
type ObligationError struct {
	Code    ObligationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ObligationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ObligationError) Unwrap() error {
	return e.Err
}

// NewObligationError creates a new ObligationError with the given code and message.
func NewObligationError(code ObligationErrorCode, message string, err error) *ObligationError {
	return &ObligationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
