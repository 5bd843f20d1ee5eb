// Package error defines domain-specific errors for the PairFin application.
package error

import "errors"

// Matching domain errors. These are soft failures: matching degrades to
// "no matches found" instead of aborting its caller, so an obligation
// creation still succeeds when the follow-up match sweep fails.
var (
	// ErrObligationNotFound is returned when the obligation to match against does not exist.
	ErrObligationNotFound = errors.New("obligation not found")

	// ErrNoMatchCriteria is returned when an obligation has no merchant name or pattern set.
	ErrNoMatchCriteria = errors.New("no merchant name or pattern set")

	// ErrNoAccountsFound is returned when the partnership has no accounts to scan.
	ErrNoAccountsFound = errors.New("no accounts found")

	// ErrTransactionNotFound is returned when a webhook references an unknown transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAccountNotFound is returned when a transaction's account cannot be resolved.
	ErrAccountNotFound = errors.New("account not found")
)

// MatchingErrorCode defines error codes for matching errors.
// Format: MATCH-XXYYYY where XX is category and YYYY is specific error.
type MatchingErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeObligationNotFound  MatchingErrorCode = "MATCH-010001"
	ErrCodeTransactionNotFound MatchingErrorCode = "MATCH-010002"
	ErrCodeAccountNotFound     MatchingErrorCode = "MATCH-010003"

	// Criteria errors (02XXXX)
	ErrCodeNoMatchCriteria MatchingErrorCode = "MATCH-020001"
	ErrCodeNoAccountsFound MatchingErrorCode = "MATCH-020002"

	// Persistence errors (03XXXX)
	ErrCodeMatchPersistence MatchingErrorCode = "MATCH-030001"
)

// MatchingError represents a matching error with code and message.
type MatchingError struct {
	Code    MatchingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MatchingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MatchingError) Unwrap() error {
	return e.Err
}

// NewMatchingError creates a new MatchingError with the given code and message.
func NewMatchingError(code MatchingErrorCode, message string, err error) *MatchingError {
	return &MatchingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
