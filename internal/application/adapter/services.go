// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims of an access token.
type TokenClaims struct {
	UserID        uuid.UUID
	PartnershipID uuid.UUID
	Email         string
	ExpiresAt     time.Time
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for the user.
	GenerateAccessToken(ctx context.Context, userID, partnershipID uuid.UUID, email string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordService defines the interface for password hashing operations.
type PasswordService interface {
	// Hash hashes a plaintext password.
	Hash(password string) (string, error)

	// Compare compares a plaintext password against a hash.
	Compare(hash, password string) error
}

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EventCache defines the interface for short-lived webhook event
// deduplication. It is load-shedding only: the database's conflict-ignoring
// insert remains the correctness mechanism under concurrent delivery.
type EventCache interface {
	// MarkSeen records the event ID with a TTL and reports whether this
	// call was the first sighting.
	MarkSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}
