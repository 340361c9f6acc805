package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/pkg/config"
	"github.com/wonny/fundscope/pkg/logger"
	"github.com/wonny/fundscope/pkg/redis"
)

// countingProvider records how often the wrapped provider is reached
type countingProvider struct {
	*Memory
	navCalls int
}

func (p *countingProvider) FetchNAVHistory(ctx context.Context, code string) (contracts.TimeSeries, error) {
	p.navCalls++
	return p.Memory.FetchNAVHistory(ctx, code)
}

func TestCached_DisabledPassesThrough(t *testing.T) {
	client, err := redis.New(context.Background(), &config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)

	mem := NewMemory()
	ts, err := contracts.NewTimeSeries([]contracts.Observation{
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1.0},
	})
	require.NoError(t, err)
	mem.Put(contracts.FundInfo{Code: "110011", Name: "Growth Mixed"}, ts)

	inner := &countingProvider{Memory: mem}
	cached := NewCached(inner, redis.NewCache(client, "test"), logger.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := cached.FetchNAVHistory(ctx, "110011")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
	}
	assert.Equal(t, 2, inner.navCalls)

	info, err := cached.FetchFundInfo(ctx, "110011")
	require.NoError(t, err)
	assert.Equal(t, "Growth Mixed", info.Name)

	_, err = cached.FetchNAVHistory(ctx, "000000")
	assert.ErrorIs(t, err, contracts.ErrFundNotFound)

	assert.NoError(t, cached.Invalidate(ctx, "110011"))
}

func TestMemory(t *testing.T) {
	mem := NewMemory()
	_, err := mem.FetchFundInfo(context.Background(), "nope")
	assert.ErrorIs(t, err, contracts.ErrFundNotFound)
}
