package contracts

import (
	"encoding/json"
	"fmt"
	"time"
)

// Day is the length of one calendar day
const Day = 24 * time.Hour

// DateFormat is the ISO-8601 day format used on every external surface
const DateFormat = "2006-01-02"

// readDateFormat also accepts single-digit month/day (2025-7-1)
const readDateFormat = "2006-1-2"

// NormalizeDate truncates t to its calendar day at midnight UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar day, leniently accepting 2025-7-1
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(readDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return NormalizeDate(t), nil
}

// Observation is one NAV observation.
// Standard funds carry the unit NAV; money funds carry the
// per-10,000-share daily yield (每万份收益).
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is an immutable, strictly date-ascending sequence of observations
// ⭐ SSOT: NewTimeSeries is the only constructor, so every TimeSeries is validated
type TimeSeries struct {
	obs []Observation
}

// NewTimeSeries copies obs, normalizes the dates and checks ordering.
// Empty input fails with ErrEmptyRange, duplicated or unsorted dates with ErrInvalidSeries.
func NewTimeSeries(obs []Observation) (TimeSeries, error) {
	if len(obs) == 0 {
		return TimeSeries{}, fmt.Errorf("new time series: %w", ErrEmptyRange)
	}

	cp := make([]Observation, len(obs))
	for i, o := range obs {
		cp[i] = Observation{Date: NormalizeDate(o.Date), Value: o.Value}
		if i > 0 && !cp[i].Date.After(cp[i-1].Date) {
			return TimeSeries{}, fmt.Errorf("observation %d (%s) not after %s: %w",
				i, cp[i].Date.Format(DateFormat), cp[i-1].Date.Format(DateFormat), ErrInvalidSeries)
		}
	}

	return TimeSeries{obs: cp}, nil
}

// Len returns the number of observations
func (ts TimeSeries) Len() int { return len(ts.obs) }

// IsEmpty reports whether the series holds no observation (zero value only)
func (ts TimeSeries) IsEmpty() bool { return len(ts.obs) == 0 }

// At returns the i-th observation
func (ts TimeSeries) At(i int) Observation { return ts.obs[i] }

// First returns the earliest observation. It panics on an empty series.
func (ts TimeSeries) First() Observation { return ts.obs[0] }

// Last returns the latest observation. It panics on an empty series.
func (ts TimeSeries) Last() Observation { return ts.obs[len(ts.obs)-1] }

// Observations returns a copy of the observations
func (ts TimeSeries) Observations() []Observation {
	cp := make([]Observation, len(ts.obs))
	copy(cp, ts.obs)
	return cp
}

// Values returns the observation values in date order
func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts.obs))
	for i, o := range ts.obs {
		values[i] = o.Value
	}
	return values
}

// Dates returns the observation dates in ascending order
func (ts TimeSeries) Dates() []time.Time {
	dates := make([]time.Time, len(ts.obs))
	for i, o := range ts.obs {
		dates[i] = o.Date
	}
	return dates
}

// Span returns [first date, last date]. The zero range is returned for an empty series.
func (ts TimeSeries) Span() DateRange {
	if ts.IsEmpty() {
		return DateRange{}
	}
	return DateRange{Start: ts.First().Date, End: ts.Last().Date}
}

// MarshalJSON encodes the series as its observation array
func (ts TimeSeries) MarshalJSON() ([]byte, error) {
	if ts.obs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ts.obs)
}

// UnmarshalJSON decodes an observation array and validates it like NewTimeSeries
func (ts *TimeSeries) UnmarshalJSON(data []byte) error {
	var obs []Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return err
	}
	parsed, err := NewTimeSeries(obs)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// DateRange is an inclusive calendar-day range
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both bounds and fails with ErrInvalidRange if start > end
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: NormalizeDate(start), End: NormalizeDate(end)}
	if r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("start %s after end %s: %w",
			r.Start.Format(DateFormat), r.End.Format(DateFormat), ErrInvalidRange)
	}
	return r, nil
}

// Contains reports whether d falls in the range, bounds included
func (r DateRange) Contains(d time.Time) bool {
	d = NormalizeDate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Within reports whether r lies entirely inside outer
func (r DateRange) Within(outer DateRange) bool {
	return outer.Contains(r.Start) && outer.Contains(r.End)
}

// CalendarDays returns (end - start).days + 1
func (r DateRange) CalendarDays() int {
	return int(r.End.Sub(r.Start)/Day) + 1
}

// String formats the range as "start~end"
func (r DateRange) String() string {
	return r.Start.Format(DateFormat) + "~" + r.End.Format(DateFormat)
}
