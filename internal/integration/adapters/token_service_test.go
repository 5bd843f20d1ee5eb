// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	ctx := context.Background()

	userID := uuid.New()
	partnershipID := uuid.New()

	token, err := svc.GenerateAccessToken(ctx, userID, partnershipID, "sam@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := svc.ValidateAccessToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.PartnershipID != partnershipID {
		t.Errorf("expected partnership ID %s, got %s", partnershipID, claims.PartnershipID)
	}
	if claims.Email != "sam@example.com" {
		t.Errorf("expected email sam@example.com, got %s", claims.Email)
	}
	if time.Until(claims.ExpiresAt) > time.Hour {
		t.Errorf("expected expiry within an hour, got %s", claims.ExpiresAt)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := NewTokenService("secret-a", time.Hour).
		GenerateAccessToken(ctx, uuid.New(), uuid.New(), "sam@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).ValidateAccessToken(ctx, token); err == nil {
		t.Error("expected validation under a different secret to fail")
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	ctx := context.Background()

	svc := &tokenService{secret: []byte("test-secret"), duration: -time.Hour}
	token, err := svc.GenerateAccessToken(ctx, uuid.New(), uuid.New(), "sam@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, err := svc.ValidateAccessToken(context.Background(), "not-a-jwt"); err == nil {
		t.Error("expected garbage input to be rejected")
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("expected the hash to differ from the password")
	}

	if err := svc.Compare(hash, "s3cret"); err != nil {
		t.Errorf("expected the password to verify: %v", err)
	}
	if err := svc.Compare(hash, "wrong"); err == nil {
		t.Error("expected a wrong password to fail")
	}
}
