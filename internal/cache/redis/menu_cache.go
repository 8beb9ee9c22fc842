// Package redis memoizes extracted menus in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/domain"
)

// store is the subset of the Redis client the cache uses.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// MenuCache implements port.MenuCache over Redis. Values are menu JSON.
type MenuCache struct {
	client store
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg *config.CacheConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.NewClient: ping %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}

// NewMenuCache wraps a connected client. A zero ttl keeps entries forever.
func NewMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *MenuCache {
	return newMenuCache(client, ttl, logger)
}

func newMenuCache(client store, ttl time.Duration, logger *zap.Logger) *MenuCache {
	return &MenuCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached menu for key. A miss is (nil, false, nil).
func (c *MenuCache) Get(ctx context.Context, key string) (*domain.ParsedMenu, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("MenuCache.Get %s: %w", key, err)
	}

	var m domain.ParsedMenu
	if err := json.Unmarshal(value, &m); err != nil {
		c.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &m, true, nil
}

// Set stores m under key.
func (c *MenuCache) Set(ctx context.Context, key string, m *domain.ParsedMenu) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("MenuCache.Set %s: marshal: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("MenuCache.Set %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection for the readiness probe.
func (c *MenuCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
