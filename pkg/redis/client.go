package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/fundscope/pkg/config"
)

// Client wraps the Redis client with additional utilities
// ⭐ SSOT: Redis 연결은 여기서만 관리
type Client struct {
	rdb     *redis.Client
	enabled bool
	ttl     time.Duration
}

// New creates a new Redis client. A disabled config yields a no-op client.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{enabled: false, ttl: cfg.Redis.TTL}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{
		rdb:     rdb,
		enabled: true,
		ttl:     cfg.Redis.TTL,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled returns whether Redis is enabled
func (c *Client) Enabled() bool {
	return c.enabled
}

// TTL returns the configured default expiry (0 means no expiry)
func (c *Client) TTL() time.Duration {
	return c.ttl
}

// Redis returns the underlying redis client for advanced usage
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
