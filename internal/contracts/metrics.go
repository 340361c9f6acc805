package contracts

import "time"

// MetricsResult is the report produced for one fund and one date range.
// Exactly one of Standard / Money is set, matching Kind.
// ⭐ SSOT: the fund-type variant is carried here, not re-derived by presentation code
type MetricsResult struct {
	Kind  FundKind  `json:"kind"`
	Range DateRange `json:"range"`

	Standard *StandardMetrics  `json:"standard,omitempty"`
	Money    *MoneyFundMetrics `json:"money,omitempty"`

	// Full-series statistics, independent of Range
	Global     GlobalStats     `json:"global"`
	MoneyStats *MoneyFundStats `json:"money_stats,omitempty"`
}

// StandardMetrics holds the range metrics of a non-money fund. Percentages are in percent units.
type StandardMetrics struct {
	PeriodReturn         float64  `json:"period_return"`           // 区间累计收益率
	AnnualizedReturn     float64  `json:"annualized_return"`       // 252 trading days
	AnnualizedVolatility float64  `json:"annualized_volatility"`   // sample stdev * sqrt(252)
	MaxDrawdown          float64  `json:"max_drawdown"`            // non-negative
	SharpeRatio          *float64 `json:"sharpe_ratio,omitempty"`  // nil when volatility is 0
	SingleReturn         bool     `json:"single_return,omitempty"` // two observations, volatility is not meaningful
	PeriodStartNAV       float64  `json:"period_start_nav"`
	PeriodEndNAV         float64  `json:"period_end_nav"`
	TradingDays          int      `json:"trading_days"`
	CalendarDays         int      `json:"calendar_days"`
}

// MoneyFundMetrics holds the range metrics of a money-market fund
type MoneyFundMetrics struct {
	CumulativeYield float64 `json:"cumulative_yield"` // sum(daily yield)/10000*100
	AnnualizedYield float64 `json:"annualized_yield"` // 365 calendar days
	TradingDays     int     `json:"trading_days"`
	CalendarDays    int     `json:"calendar_days"`
}

// GlobalStats summarizes the whole series, whatever range was selected
type GlobalStats struct {
	LatestDate        time.Time `json:"latest_date"`
	LatestNAV         float64   `json:"latest_nav"`
	MaxNAV            float64   `json:"max_nav"`
	MaxNAVDate        time.Time `json:"max_nav_date"` // first occurrence on tie
	MinNAV            float64   `json:"min_nav"`
	MinNAVDate        time.Time `json:"min_nav_date"`           // first occurrence on tie
	TotalReturn       *float64  `json:"total_return,omitempty"` // nil when the first value is 0
	EstablishmentDate time.Time `json:"establishment_date"`
}

// RollingPoint is one position of the rolling 7-day annualized series.
// Defined is false for the first six positions.
type RollingPoint struct {
	Date    time.Time `json:"date"`
	Value   float64   `json:"value"`
	Defined bool      `json:"defined"`
}

// MoneyFundStats is the money-fund-only block computed over the whole series
type MoneyFundStats struct {
	Latest7DayAnnual  float64        `json:"latest_7day_annual"` // 七日年化收益率
	Max7DayAnnual     float64        `json:"max_7day_annual"`
	Max7DayDate       time.Time      `json:"max_7day_date"`
	Min7DayAnnual     float64        `json:"min_7day_annual"`
	Min7DayDate       time.Time      `json:"min_7day_date"`
	Rolling7DayAnnual []RollingPoint `json:"rolling_7day_annual,omitempty"`
}

// TradingDays returns the trading-day count of whichever variant is set
func (m *MetricsResult) TradingDays() int {
	switch {
	case m.Standard != nil:
		return m.Standard.TradingDays
	case m.Money != nil:
		return m.Money.TradingDays
	default:
		return 0
	}
}

// CalendarDays returns the calendar-day count of whichever variant is set
func (m *MetricsResult) CalendarDays() int {
	switch {
	case m.Standard != nil:
		return m.Standard.CalendarDays
	case m.Money != nil:
		return m.Money.CalendarDays
	default:
		return 0
	}
}
