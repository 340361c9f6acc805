package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides typed JSON caching under a key prefix
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Key returns the full redis key for key
func (c *Cache) Key(key string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, key)
}

// Enabled reports whether the backing client is live
func (c *Cache) Enabled() bool {
	return c.client.Enabled()
}

// Get retrieves a cached value. A missing key returns (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value with ttl; ttl <= 0 uses the client default
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	if ttl <= 0 {
		ttl = c.client.TTL()
	}
	return c.client.Redis().Set(ctx, c.Key(key), data, ttl).Err()
}

// Delete removes cached values
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.client.Enabled() || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.Key(k)
	}
	return c.client.Redis().Del(ctx, full...).Err()
}

// Predefined TTLs
const (
	TTLLong  = 1 * time.Hour  // 펀드 기본정보
	TTLDaily = 24 * time.Hour // 일별 기준가 (하루 1회 갱신)
)

// Cache key generators
func FundInfoKey(code string) string {
	return fmt.Sprintf("fund:info:%s", code)
}

func NAVHistoryKey(code string) string {
	return fmt.Sprintf("fund:nav:%s", code)
}
