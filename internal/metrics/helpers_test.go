package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wonny/fundscope/internal/contracts"
)

func day(s string) time.Time {
	t, err := contracts.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// daily builds consecutive-day observations starting at 2025-01-01
func daily(t *testing.T, values ...float64) contracts.TimeSeries {
	t.Helper()
	start := day("2025-01-01")
	obs := make([]contracts.Observation, len(values))
	for i, v := range values {
		obs[i] = contracts.Observation{Date: start.AddDate(0, 0, i), Value: v}
	}
	ts, err := contracts.NewTimeSeries(obs)
	require.NoError(t, err)
	return ts
}
