// Package cache implements Redis-backed caching adapters.
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*eventCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &eventCache{client: client}, mr
}

func TestEventCache_MarkSeen(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	first, err := cache.MarkSeen(ctx, "evt-123", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Error("expected the first sighting to report true")
	}

	second, err := cache.MarkSeen(ctx, "evt-123", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second {
		t.Error("expected the second sighting to report false")
	}

	other, err := cache.MarkSeen(ctx, "evt-456", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !other {
		t.Error("expected a different event ID to be unseen")
	}

	if !mr.Exists(eventKeyPrefix + "evt-123") {
		t.Error("expected the event key to be stored under the webhook prefix")
	}
}

func TestEventCache_TTLExpiryReopensTheWindow(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if _, err := cache.MarkSeen(ctx, "evt-123", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	first, err := cache.MarkSeen(ctx, "evt-123", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Error("expected an expired event ID to count as unseen again")
	}
}
