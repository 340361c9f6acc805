// Package source implements contracts.DataProvider over local files, a
// read-only PostgreSQL schema and an in-memory map, plus a redis-backed
// cache decorator keyed by fund code.
package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wonny/fundscope/internal/contracts"
)

// sortObservations orders raw rows by date; duplicates are left for NewTimeSeries to reject
func sortObservations(obs []contracts.Observation) {
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
}

// Memory is an in-memory DataProvider
type Memory struct {
	mu     sync.RWMutex
	funds  map[string]contracts.FundInfo
	series map[string]contracts.TimeSeries
}

// NewMemory creates an empty in-memory provider
func NewMemory() *Memory {
	return &Memory{
		funds:  make(map[string]contracts.FundInfo),
		series: make(map[string]contracts.TimeSeries),
	}
}

// Put registers a fund and its history, replacing any previous entry
func (m *Memory) Put(info contracts.FundInfo, ts contracts.TimeSeries) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funds[info.Code] = info
	m.series[info.Code] = ts
}

// FetchNAVHistory implements contracts.DataProvider
func (m *Memory) FetchNAVHistory(_ context.Context, code string) (contracts.TimeSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ts, ok := m.series[code]
	if !ok {
		return contracts.TimeSeries{}, fmt.Errorf("fund %s: %w", code, contracts.ErrFundNotFound)
	}
	return ts, nil
}

// FetchFundInfo implements contracts.DataProvider
func (m *Memory) FetchFundInfo(_ context.Context, code string) (contracts.FundInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.funds[code]
	if !ok {
		return contracts.FundInfo{}, fmt.Errorf("fund %s: %w", code, contracts.ErrFundNotFound)
	}
	return info, nil
}
