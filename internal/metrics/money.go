package metrics

import (
	"fmt"
	"math"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/series"
)

// sevenDayAnnual annualizes a 7-day yield sum: ((1 + sum/10000)^(365/7) - 1) * 100
func sevenDayAnnual(windowSum float64) float64 {
	ret := windowSum / MoneyFundUnits * 100 // 七日累计收益率 (%)
	return (math.Pow(1+ret/100, float64(CalendarDaysPerYear)/RollingWindow) - 1) * 100
}

// Rolling7DayAnnual returns the trailing 7-observation annualized yield at every
// position. The first six positions have no full window and are left undefined.
func Rolling7DayAnnual(ts contracts.TimeSeries) []contracts.RollingPoint {
	values := ts.Values()
	points := make([]contracts.RollingPoint, len(values))

	for i := range values {
		points[i].Date = ts.At(i).Date
		if i < RollingWindow-1 {
			continue
		}
		points[i].Value = sevenDayAnnual(sum(values[i-RollingWindow+1 : i+1]))
		points[i].Defined = true
	}
	return points
}

// Latest7DayYield returns the rolling 7-day annualized yield at the latest date
func Latest7DayYield(ts contracts.TimeSeries) (float64, error) {
	if ts.Len() < RollingWindow {
		return 0, fmt.Errorf("7-day yield needs %d observations, got %d: %w", RollingWindow, ts.Len(), contracts.ErrInsufficientData)
	}
	values := ts.Values()
	latest := sevenDayAnnual(sum(values[len(values)-RollingWindow:]))
	if err := checkFinite("latest 7-day yield", latest); err != nil {
		return 0, err
	}
	return latest, nil
}

// Rolling7DayExtremes scans the defined points for the historical max and min.
// Ties keep the first occurrence.
func Rolling7DayExtremes(points []contracts.RollingPoint) (hi, lo contracts.RollingPoint, err error) {
	found := false
	for _, p := range points {
		if !p.Defined {
			continue
		}
		if !found {
			hi, lo, found = p, p, true
			continue
		}
		if p.Value > hi.Value {
			hi = p
		}
		if p.Value < lo.Value {
			lo = p
		}
	}

	if !found {
		return hi, lo, fmt.Errorf("rolling 7-day extremes: %w", contracts.ErrInsufficientData)
	}
	return hi, lo, nil
}

// CumulativeYield returns sum(daily yield) / 10000 * 100 over s
func CumulativeYield(s contracts.TimeSeries) float64 {
	return sum(s.Values()) / MoneyFundUnits * 100
}

// AnnualizedYield compounds cumulativeYield (percent) over 365/calendarDays
func AnnualizedYield(cumulativeYield float64, calendarDays int) (float64, error) {
	if calendarDays < 1 {
		return 0, fmt.Errorf("annualized yield over %d calendar days: %w", calendarDays, contracts.ErrInvalidRange)
	}
	annual := (math.Pow(1+cumulativeYield/100, float64(CalendarDaysPerYear)/float64(calendarDays)) - 1) * 100
	if err := checkFinite("annualized yield", annual); err != nil {
		return 0, err
	}
	return annual, nil
}

// MoneyFund computes the range metrics of a money-market fund over slice s
func MoneyFund(s contracts.TimeSeries, r contracts.DateRange) (*contracts.MoneyFundMetrics, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("money fund metrics: %w", contracts.ErrInsufficientData)
	}

	c := series.CalendarDays(r)
	cumulative := CumulativeYield(s)
	annual, err := AnnualizedYield(cumulative, c)
	if err != nil {
		return nil, err
	}

	return &contracts.MoneyFundMetrics{
		CumulativeYield: cumulative,
		AnnualizedYield: annual,
		TradingDays:     series.TradingDays(s),
		CalendarDays:    c,
	}, nil
}

// MoneyStats computes the money-fund block over the full series:
// latest, max and min 7-day annualized yield plus the rolling series itself.
func MoneyStats(ts contracts.TimeSeries) (*contracts.MoneyFundStats, error) {
	latest, err := Latest7DayYield(ts)
	if err != nil {
		return nil, err
	}

	points := Rolling7DayAnnual(ts)
	hi, lo, err := Rolling7DayExtremes(points)
	if err != nil {
		return nil, err
	}
	if err := checkFinite("max 7-day yield", hi.Value); err != nil {
		return nil, err
	}

	return &contracts.MoneyFundStats{
		Latest7DayAnnual:  latest,
		Max7DayAnnual:     hi.Value,
		Max7DayDate:       hi.Date,
		Min7DayAnnual:     lo.Value,
		Min7DayDate:       lo.Date,
		Rolling7DayAnnual: points,
	}, nil
}
