package metrics

import (
	"fmt"

	"github.com/wonny/fundscope/internal/contracts"
)

// Global summarizes the full series: latest value, historical max/min with the
// date they were first reached, total return since the first observation and
// the establishment (first) date.
func Global(ts contracts.TimeSeries) (contracts.GlobalStats, error) {
	if ts.IsEmpty() {
		return contracts.GlobalStats{}, fmt.Errorf("global stats: %w", contracts.ErrInsufficientData)
	}

	first, last := ts.First(), ts.Last()
	g := contracts.GlobalStats{
		LatestDate:        last.Date,
		LatestNAV:         last.Value,
		MaxNAV:            first.Value,
		MaxNAVDate:        first.Date,
		MinNAV:            first.Value,
		MinNAVDate:        first.Date,
		EstablishmentDate: first.Date,
	}

	// Strict comparisons keep the first occurrence on ties.
	for i := 1; i < ts.Len(); i++ {
		o := ts.At(i)
		if o.Value > g.MaxNAV {
			g.MaxNAV, g.MaxNAVDate = o.Value, o.Date
		}
		if o.Value < g.MinNAV {
			g.MinNAV, g.MinNAVDate = o.Value, o.Date
		}
	}

	// A money fund can start with a zero daily yield; the ratio is undefined then.
	if first.Value != 0 {
		total := (last.Value/first.Value - 1) * 100
		g.TotalReturn = &total
	}

	return g, nil
}
