package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medeu/storefront/pkg/logger"
)

// ErrMiss is returned when a key is absent.
var ErrMiss = redis.Nil

// Cache is a thin JSON cache over Redis. A nil Cache is a no-op so callers can
// run without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Str("addr", addr).
		Dur("ttl", ttl).
		Msg("Redis cache initialized")

	return &Cache{client: client, ttl: ttl}, nil
}

// GetJSON unmarshals the cached value for key into dest. Returns ErrMiss on a
// cache miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON stores value under key with the configured TTL. Failures are logged
// and swallowed; the cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("cache_key", key).
			Msg("Failed to cache value")
	}
}

// Invalidate removes keys from the cache.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx).
			Err(err).
			Strs("cache_keys", keys).
			Msg("Failed to invalidate cache keys")
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
