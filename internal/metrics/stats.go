// Package metrics is the fund metrics engine: pure functions turning a NAV
// time series into return, risk and yield indicators.
//
// Standard funds use ratio returns annualized over 252 trading days.
// Money-market funds carry per-10,000-share daily yields, so their returns are
// additive and annualized over 365 calendar days. Results are in percent units.
// Every function is deterministic and safe to call concurrently.
package metrics

import "math"

const (
	// TradingDaysPerYear annualizes standard-fund returns and volatility
	TradingDaysPerYear = 252
	// CalendarDaysPerYear annualizes money-fund yields
	CalendarDaysPerYear = 365
	// MoneyFundUnits is the share count money-fund daily yields are quoted for (每万份)
	MoneyFundUnits = 10000
	// RollingWindow is the trailing window of the 7-day annualized yield
	RollingWindow = 7
)

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// sampleStdDev uses the n-1 denominator. A single value shows no dispersion and yields 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}
