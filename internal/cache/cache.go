// Package cache provides an optional Redis read-through cache for listing
// queries. A nil client disables it entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const availabilityPrefix = "available-rooms:"

// ListingCache caches JSON-serialized listing responses in Redis.
type ListingCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ListingCache {
	return &ListingCache{
		redis:  client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// Enabled reports whether the cache is configured for use.
func (c *ListingCache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// AvailabilityKey builds the cache key for an available-rooms query.
func AvailabilityKey(checkIn, checkOut, roomType string) string {
	return fmt.Sprintf("%s%s:%s:%s", availabilityPrefix, checkIn, checkOut, roomType)
}

// Get loads a cached value into out, reporting whether it was present.
func (c *ListingCache) Get(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

// Set stores a value under key with the configured TTL. Failures are logged
// and swallowed; the cache is best-effort.
func (c *ListingCache) Set(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// InvalidateAvailability drops every cached available-rooms listing. Called
// on booking lifecycle events: any create, cancel, or upgrade can change
// which rooms are free.
func (c *ListingCache) InvalidateAvailability(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	iter := c.redis.Scan(ctx, 0, availabilityPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Debug().Err(err).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug().Err(err).Msg("cache invalidation failed")
		return
	}
	c.logger.Debug().Int("keys", len(keys)).Msg("availability cache invalidated")
}
