// Package cache provides the Redis-backed cache used for stats responses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/go-redis/redis/v8"

	"github.com/voicebookhq/voicebook-backend/internal/config"
)

// ErrMiss is returned when a key is absent or the cache is unavailable.
var ErrMiss = errors.New("cache miss")

// Cache wraps the go-redis client with the JSON helpers the handlers use.
// A nil Cache is valid and behaves as always-miss, so the API keeps working
// when Redis is down or not configured.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping. A failed
// ping returns nil: callers treat the cache as absent rather than failing.
func New(ctx context.Context, cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &Cache{client: client}
}

// NewFromClient wraps an existing client. Used by tests.
func NewFromClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetJSON unmarshals the cached value under key into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return ErrMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrMiss
	}
	return nil
}

// SetJSON stores value under key with the given TTL. Errors are swallowed:
// the cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// HealthCheck pings Redis so the health endpoint can report on it.
func (c *Cache) HealthCheck(ctx context.Context) error {
	if c == nil || c.client == nil {
		return redis.ErrClosed
	}
	return c.client.Ping(ctx).Err()
}
