package metrics

import (
	"fmt"
	"math"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/series"
)

// PeriodReturn returns (last/first - 1) * 100
func PeriodReturn(s contracts.TimeSeries) (float64, error) {
	if s.IsEmpty() {
		return 0, fmt.Errorf("period return: %w", contracts.ErrInsufficientData)
	}
	if err := checkPositive(s); err != nil {
		return 0, err
	}
	return (s.Last().Value/s.First().Value - 1) * 100, nil
}

// AnnualizedReturn compounds periodReturn (percent) over 252/tradingDays
func AnnualizedReturn(periodReturn float64, tradingDays int) (float64, error) {
	if tradingDays <= 0 {
		return 0, fmt.Errorf("annualized return over %d trading days: %w", tradingDays, contracts.ErrInsufficientData)
	}
	annual := (math.Pow(1+periodReturn/100, float64(TradingDaysPerYear)/float64(tradingDays)) - 1) * 100
	if err := checkFinite("annualized return", annual); err != nil {
		return 0, err
	}
	return annual, nil
}

// DailyReturns returns r_i = v[i]/v[i-1] - 1 for i >= 1 (length n-1)
func DailyReturns(s contracts.TimeSeries) []float64 {
	if s.Len() < 2 {
		return nil
	}

	values := s.Values()
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns[i-1] = values[i]/values[i-1] - 1
	}
	return returns
}

// AnnualizedVolatility returns stdev(daily returns) * sqrt(252) * 100, sample stdev.
// Two observations give a single daily return and report 0.
func AnnualizedVolatility(s contracts.TimeSeries) (float64, error) {
	if s.Len() < 2 {
		return 0, fmt.Errorf("volatility needs 2 observations, got %d: %w", s.Len(), contracts.ErrInsufficientData)
	}
	if err := checkPositive(s); err != nil {
		return 0, err
	}
	return sampleStdDev(DailyReturns(s)) * math.Sqrt(TradingDaysPerYear) * 100, nil
}

// DrawdownSeries returns D_i = (v_i - M_i) / M_i * 100 where M_i is the running max
func DrawdownSeries(s contracts.TimeSeries) []float64 {
	values := s.Values()
	drawdowns := make([]float64, len(values))

	peak := math.Inf(-1)
	for i, v := range values {
		if v > peak {
			peak = v
		}
		drawdowns[i] = (v - peak) / peak * 100
	}
	return drawdowns
}

// MaxDrawdown returns abs(min drawdown), always >= 0
func MaxDrawdown(s contracts.TimeSeries) (float64, error) {
	if s.IsEmpty() {
		return 0, fmt.Errorf("max drawdown: %w", contracts.ErrInsufficientData)
	}
	if err := checkPositive(s); err != nil {
		return 0, err
	}

	worst := 0.0
	for _, dd := range DrawdownSeries(s) {
		if dd < worst {
			worst = dd
		}
	}
	return math.Abs(worst), nil
}

// SharpeRatio returns (annualReturn - riskFree) / annualVolatility, all in percent
func SharpeRatio(annualReturn, annualVolatility, riskFree float64) (float64, error) {
	if annualVolatility == 0 {
		return 0, fmt.Errorf("sharpe ratio with zero volatility: %w", contracts.ErrInsufficientData)
	}
	return (annualReturn - riskFree) / annualVolatility, nil
}

// Standard computes the range metrics of a non-money fund over slice s.
// r is the selected range, used for the calendar-day count.
func Standard(s contracts.TimeSeries, r contracts.DateRange, riskFree float64) (*contracts.StandardMetrics, error) {
	n := series.TradingDays(s)

	periodReturn, err := PeriodReturn(s)
	if err != nil {
		return nil, err
	}

	annualReturn, err := AnnualizedReturn(periodReturn, n)
	if err != nil {
		return nil, err
	}

	m := &contracts.StandardMetrics{
		PeriodReturn:     periodReturn,
		AnnualizedReturn: annualReturn,
		PeriodStartNAV:   s.First().Value,
		PeriodEndNAV:     s.Last().Value,
		TradingDays:      n,
		CalendarDays:     series.CalendarDays(r),
	}

	// 리스크 지표는 최소 2개 관측치 필요
	if m.AnnualizedVolatility, err = AnnualizedVolatility(s); err != nil {
		return nil, err
	}
	if m.MaxDrawdown, err = MaxDrawdown(s); err != nil {
		return nil, err
	}

	// 일간 수익률 1개: 변동성 0은 "무위험"이 아니므로 샤프 비율 생략
	if n == 2 {
		m.SingleReturn = true
		return m, nil
	}
	if sharpe, err := SharpeRatio(annualReturn, m.AnnualizedVolatility, riskFree); err == nil {
		m.SharpeRatio = &sharpe
	}

	return m, nil
}

// checkFinite rejects Inf and NaN, which JSON cannot carry
func checkFinite(name string, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("%s is %v: %w", name, v, contracts.ErrNonFinite)
	}
	return nil
}

// checkPositive rejects NAVs that would divide by zero or flip signs
func checkPositive(s contracts.TimeSeries) error {
	for i := 0; i < s.Len(); i++ {
		if o := s.At(i); o.Value <= 0 {
			return fmt.Errorf("non-positive NAV %v on %s: %w", o.Value, o.Date.Format(contracts.DateFormat), contracts.ErrInvalidSeries)
		}
	}
	return nil
}
