// Package cache implements Redis-backed caching adapters.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pairfin/backend/internal/application/adapter"
)

const eventKeyPrefix = "webhook:event:"

// eventCache implements adapter.EventCache on top of Redis. A cache miss or
// Redis outage is treated as "not seen" so delivery processing proceeds; the
// database unique index stays the source of truth for duplicates.
type eventCache struct {
	client *redis.Client
}

// NewEventCache creates a new Redis-backed event cache.
func NewEventCache(client *redis.Client) adapter.EventCache {
	return &eventCache{
		client: client,
	}
}

// MarkSeen records the event ID with a TTL and reports whether this call was
// the first sighting.
func (c *eventCache) MarkSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	first, err := c.client.SetNX(ctx, eventKeyPrefix+eventID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event seen: %w", err)
	}
	return first, nil
}
