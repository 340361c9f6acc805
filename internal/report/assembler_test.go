package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/reportconfig"
	"github.com/wonny/fundscope/pkg/logger"
)

var (
	standardFund = contracts.FundInfo{Code: "110011", Name: "Growth Mixed", Type: "混合型"}
	moneyFund    = contracts.FundInfo{Code: "000198", Name: "Cash Plus", Type: "货币型", IsMoneyFund: true}
)

func day(s string) time.Time {
	t, err := contracts.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func daily(t *testing.T, start string, values ...float64) contracts.TimeSeries {
	t.Helper()
	d := day(start)
	obs := make([]contracts.Observation, len(values))
	for i, v := range values {
		obs[i] = contracts.Observation{Date: d.AddDate(0, 0, i), Value: v}
	}
	ts, err := contracts.NewTimeSeries(obs)
	require.NoError(t, err)
	return ts
}

func newAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := NewAssembler(reportconfig.Default(), logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNewAssembler_InvalidConfig(t *testing.T) {
	cfg := reportconfig.Default()
	cfg.Ranges.DefaultPreset = "10Y"

	_, err := NewAssembler(cfg, logger.Nop())
	assert.Error(t, err)
}

func TestAssemble_Standard(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 1.00, 1.10, 1.05, 1.20, 0.90)

	result, err := a.Assemble(ts, standardFund, ts.Span())
	require.NoError(t, err)

	assert.Equal(t, contracts.FundKindStandard, result.Kind)
	require.NotNil(t, result.Standard)
	assert.Nil(t, result.Money)
	assert.Nil(t, result.MoneyStats)
	assert.InDelta(t, 25.0, result.Standard.MaxDrawdown, 1e-9)
	assert.InDelta(t, -10.0, result.Standard.PeriodReturn, 1e-9)
	assert.Equal(t, 5, result.TradingDays())
	assert.Equal(t, 5, result.CalendarDays())
}

func TestAssemble_IdenticalValues(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 2.0, 2.0, 2.0)

	result, err := a.Assemble(ts, standardFund, ts.Span())
	require.NoError(t, err)

	m := result.Standard
	assert.Equal(t, 0.0, m.PeriodReturn)
	assert.Equal(t, 0.0, m.AnnualizedReturn)
	assert.Equal(t, 0.0, m.AnnualizedVolatility)
	assert.Equal(t, 0.0, m.MaxDrawdown)
	assert.Nil(t, m.SharpeRatio)
}

func TestAssemble_GlobalIndependentOfRange(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 1.00, 1.50, 1.20, 1.30, 0.80, 1.10)

	full, err := a.Assemble(ts, standardFund, ts.Span())
	require.NoError(t, err)

	narrow, err := a.Assemble(ts, standardFund, contracts.DateRange{Start: day("2025-01-03"), End: day("2025-01-04")})
	require.NoError(t, err)

	assert.Equal(t, full.Global, narrow.Global)
	assert.Equal(t, 1.50, narrow.Global.MaxNAV)
	assert.Equal(t, 2, narrow.Standard.TradingDays)
}

func TestAssemble_InvalidRange(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 1.0, 1.1, 1.2)

	tests := []struct {
		name string
		r    contracts.DateRange
	}{
		{"start after end", contracts.DateRange{Start: day("2025-01-03"), End: day("2025-01-02")}},
		{"start before first date", contracts.DateRange{Start: day("2024-12-31"), End: day("2025-01-02")}},
		{"end after last date", contracts.DateRange{Start: day("2025-01-01"), End: day("2025-01-04")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Assemble(ts, standardFund, tt.r)
			assert.ErrorIs(t, err, contracts.ErrInvalidRange)
		})
	}
}

func TestAssemble_NormalizesRange(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 1.00, 1.10, 1.05, 1.20, 0.90)
	kst := time.FixedZone("KST", 9*60*60)

	t.Run("calendar days in a non-UTC zone", func(t *testing.T) {
		r := contracts.DateRange{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, kst),
			End:   time.Date(2025, 1, 5, 0, 0, 0, 0, kst),
		}
		result, err := a.Assemble(ts, standardFund, r)
		require.NoError(t, err)

		assert.Equal(t, 5, result.Standard.TradingDays)
		assert.Equal(t, 5, result.Standard.CalendarDays)
		assert.Equal(t, 0.90, result.Standard.PeriodEndNAV)
		assert.InDelta(t, 25.0, result.Standard.MaxDrawdown, 1e-9)
		assert.Equal(t, day("2025-01-01"), result.Range.Start)
		assert.Equal(t, day("2025-01-05"), result.Range.End)
	})

	t.Run("bounds with a time of day", func(t *testing.T) {
		r := contracts.DateRange{
			Start: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		}
		result, err := a.Assemble(ts, standardFund, r)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Standard.TradingDays)
		assert.Equal(t, 1.10, result.Standard.PeriodStartNAV)
		assert.Equal(t, day("2025-01-02"), result.Range.Start)
	})
}

func TestAssemble_EmptyAndInsufficient(t *testing.T) {
	a := newAssembler(t)

	_, err := a.Assemble(contracts.TimeSeries{}, standardFund, contracts.DateRange{})
	assert.ErrorIs(t, err, contracts.ErrEmptyRange)

	ts, err := contracts.NewTimeSeries([]contracts.Observation{
		{Date: day("2025-01-03"), Value: 1.0},
		{Date: day("2025-01-06"), Value: 1.1},
	})
	require.NoError(t, err)

	// weekend only
	_, err = a.Assemble(ts, standardFund, contracts.DateRange{Start: day("2025-01-04"), End: day("2025-01-05")})
	assert.ErrorIs(t, err, contracts.ErrEmptyRange)

	// one observation cannot give a volatility
	_, err = a.Assemble(ts, standardFund, contracts.DateRange{Start: day("2025-01-03"), End: day("2025-01-05")})
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)
}

func TestAssemble_Money(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5)

	result, err := a.Assemble(ts, moneyFund, ts.Span())
	require.NoError(t, err)

	assert.Equal(t, contracts.FundKindMoney, result.Kind)
	assert.Nil(t, result.Standard)
	require.NotNil(t, result.Money)
	assert.InDelta(t, 0.035, result.Money.CumulativeYield, 1e-9)
	assert.InDelta(t, 1.85, result.Money.AnnualizedYield, 0.01)

	require.NotNil(t, result.MoneyStats)
	assert.InDelta(t, result.Money.AnnualizedYield, result.MoneyStats.Latest7DayAnnual, 1e-9)
	assert.Len(t, result.MoneyStats.Rolling7DayAnnual, 7)
}

func TestAssemble_MoneyShortHistory(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 0.5, 0.6, 0.4)

	result, err := a.Assemble(ts, moneyFund, ts.Span())
	require.NoError(t, err)
	require.NotNil(t, result.Money)
	assert.Nil(t, result.MoneyStats)
	assert.InDelta(t, 0.015, result.Money.CumulativeYield, 1e-9)
}

func TestAssemble_MoneyWithoutRollingSeries(t *testing.T) {
	cfg := reportconfig.Default()
	cfg.Metrics.IncludeRollingSeries = false
	a, err := NewAssembler(cfg, logger.Nop())
	require.NoError(t, err)

	ts := daily(t, "2025-01-01", 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.7)
	result, err := a.Assemble(ts, moneyFund, ts.Span())
	require.NoError(t, err)
	require.NotNil(t, result.MoneyStats)
	assert.Nil(t, result.MoneyStats.Rolling7DayAnnual)
	assert.Greater(t, result.MoneyStats.Max7DayAnnual, result.MoneyStats.Min7DayAnnual)
}

func TestAssemble_WiderRangeCountsMore(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", 1.0, 1.1, 1.05, 1.2, 1.15, 1.3)

	inner, err := a.Assemble(ts, standardFund, contracts.DateRange{Start: day("2025-01-02"), End: day("2025-01-04")})
	require.NoError(t, err)
	outer, err := a.Assemble(ts, standardFund, ts.Span())
	require.NoError(t, err)

	assert.LessOrEqual(t, inner.TradingDays(), outer.TradingDays())
	assert.LessOrEqual(t, inner.CalendarDays(), outer.CalendarDays())
}

func TestAssemblePreset(t *testing.T) {
	a := newAssembler(t)
	ts := daily(t, "2025-01-01", make40(1.0)...)

	result, err := a.AssemblePreset(ts, standardFund, "1w")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-02~2025-02-09", result.Range.String())
	assert.Equal(t, 8, result.TradingDays())

	_, err = a.AssemblePreset(ts, standardFund, "nope")
	assert.ErrorIs(t, err, contracts.ErrUnknownPreset)

	assert.Equal(t, "ALL", a.DefaultPreset())
	assert.Len(t, a.Presets(), 7)
}

// make40 returns 40 increasing NAVs starting at base
func make40(base float64) []float64 {
	values := make([]float64, 40)
	for i := range values {
		values[i] = base + float64(i)*0.01
	}
	return values
}
