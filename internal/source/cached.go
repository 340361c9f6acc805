package source

import (
	"context"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/pkg/logger"
	"github.com/wonny/fundscope/pkg/redis"
)

// Cached decorates a DataProvider with a redis cache keyed by fund code.
// Entries live until their TTL expires or Invalidate is called.
// Cache failures are logged and fall through to the wrapped provider.
type Cached struct {
	next   contracts.DataProvider
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCached wraps next with cache
func NewCached(next contracts.DataProvider, cache *redis.Cache, log *logger.Logger) *Cached {
	return &Cached{next: next, cache: cache, logger: log}
}

// FetchNAVHistory implements contracts.DataProvider
func (c *Cached) FetchNAVHistory(ctx context.Context, code string) (contracts.TimeSeries, error) {
	key := redis.NAVHistoryKey(code)

	var ts contracts.TimeSeries
	if found, err := c.cache.Get(ctx, key, &ts); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if found {
		return ts, nil
	}

	ts, err := c.next.FetchNAVHistory(ctx, code)
	if err != nil {
		return contracts.TimeSeries{}, err
	}

	if err := c.cache.Set(ctx, key, ts, redis.TTLDaily); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return ts, nil
}

// FetchFundInfo implements contracts.DataProvider
func (c *Cached) FetchFundInfo(ctx context.Context, code string) (contracts.FundInfo, error) {
	key := redis.FundInfoKey(code)

	var info contracts.FundInfo
	if found, err := c.cache.Get(ctx, key, &info); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if found {
		return info, nil
	}

	info, err := c.next.FetchFundInfo(ctx, code)
	if err != nil {
		return contracts.FundInfo{}, err
	}

	if err := c.cache.Set(ctx, key, info, redis.TTLLong); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return info, nil
}

// Invalidate drops the cached entries of code
func (c *Cached) Invalidate(ctx context.Context, code string) error {
	return c.cache.Delete(ctx, redis.NAVHistoryKey(code), redis.FundInfoKey(code))
}
