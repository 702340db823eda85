// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps annotated search responses in Redis so a repeated
// query does not spend YouTube quota. A nil *Cache is valid and caches
// nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pdiddy/tubelytics/pkg/types"
)

// KeyPrefix namespaces cached search responses.
const KeyPrefix = "tubelytics:search:"

const defaultTTL = 10 * time.Minute

// Cache stores search responses keyed by normalized query.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps client. A non-positive ttl means ten minutes.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Open connects to the Redis server at redisURL and pings it. An empty URL
// returns a nil Cache.
func Open(ctx context.Context, cfg types.CacheConfig, logger *zap.Logger) (*Cache, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, cfg.TTL, logger), nil
}

// Key returns the Redis key for query. Queries differing only in case or
// surrounding space share an entry.
func Key(query string) string {
	return KeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached response for query. A miss is (nil, false, nil).
func (c *Cache) Get(ctx context.Context, query string) (*types.SearchResponse, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	key := Key(query)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	var resp types.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return nil, false, nil
	}
	return &resp, true, nil
}

// Set stores resp under query for the cache TTL.
func (c *Cache) Set(ctx context.Context, query string, resp *types.SearchResponse) error {
	if c == nil || resp == nil {
		return nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	key := Key(query)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
