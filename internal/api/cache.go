package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelmate/internal/config"
)

// Cache is an optional Redis-backed response cache. Only pure evaluation
// reads (record=false, debug=false) are cached: a cached response must
// never swallow impression recording. All operations fail open.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache connects to Redis per cfg. Returns an error when the server
// is unreachable so the caller can decide to run uncached.
func NewCache(cfg config.RedisConfig) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Get returns the cached payload for key, if any.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores payload under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	c.rdb.Set(ctx, key, payload, c.ttl)
}

// Close releases the client.
func (c *Cache) Close() error { return c.rdb.Close() }
