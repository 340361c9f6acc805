// Package series provides the TimeSeries utilities the metrics engine builds on:
// range slicing, trading/calendar day counts and quick range presets.
package series

import (
	"fmt"
	"sort"

	"github.com/wonny/fundscope/internal/contracts"
)

// Slice returns the observations whose date lies in [r.Start, r.End].
// It fails with ErrEmptyRange when start > end or nothing falls in range.
func Slice(ts contracts.TimeSeries, r contracts.DateRange) (contracts.TimeSeries, error) {
	if r.Start.After(r.End) {
		return contracts.TimeSeries{}, fmt.Errorf("slice %s: %w", r, contracts.ErrEmptyRange)
	}

	dates := ts.Dates()
	// The dates are sorted, so both bounds come from binary search.
	lo := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(r.Start) })
	hi := sort.Search(len(dates), func(i int) bool { return dates[i].After(r.End) })
	if lo >= hi {
		return contracts.TimeSeries{}, fmt.Errorf("slice %s: no observation in range: %w", r, contracts.ErrEmptyRange)
	}

	return contracts.NewTimeSeries(ts.Observations()[lo:hi])
}

// TradingDays returns the number of observations (distinct trading dates)
func TradingDays(ts contracts.TimeSeries) int {
	return ts.Len()
}

// CalendarDays returns (end - start).days + 1
func CalendarDays(r contracts.DateRange) int {
	return r.CalendarDays()
}
