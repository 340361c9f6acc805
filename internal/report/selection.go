package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/wonny/fundscope/internal/contracts"
)

// Selection is the user's range choice: a quick preset, explicit bounds, or nothing.
// A missing bound defaults to the matching end of the series span.
type Selection struct {
	Start  *time.Time
	End    *time.Time
	Preset string
}

// IsZero reports whether the selection names neither bounds nor a preset
func (s Selection) IsZero() bool {
	return s.Start == nil && s.End == nil && strings.TrimSpace(s.Preset) == ""
}

// ParseSelection builds a Selection from raw strings ("" means unset)
func ParseSelection(start, end, preset string) (Selection, error) {
	sel := Selection{Preset: strings.TrimSpace(preset)}

	if start != "" {
		t, err := contracts.ParseDate(start)
		if err != nil {
			return Selection{}, fmt.Errorf("start: %w", err)
		}
		sel.Start = &t
	}
	if end != "" {
		t, err := contracts.ParseDate(end)
		if err != nil {
			return Selection{}, fmt.Errorf("end: %w", err)
		}
		sel.End = &t
	}

	if sel.Preset != "" && (sel.Start != nil || sel.End != nil) {
		return Selection{}, fmt.Errorf("preset %q combined with explicit dates: %w", sel.Preset, contracts.ErrInvalidRange)
	}
	return sel, nil
}

// Resolve turns a selection into a concrete range over ts.
// Priority: preset, then explicit bounds, then the configured default preset.
func (a *Assembler) Resolve(ts contracts.TimeSeries, sel Selection) (contracts.DateRange, error) {
	if ts.IsEmpty() {
		return contracts.DateRange{}, fmt.Errorf("resolve range: %w", contracts.ErrEmptyRange)
	}

	if sel.Preset != "" {
		return a.presets.Range(ts, sel.Preset)
	}

	if sel.Start == nil && sel.End == nil {
		return a.presets.Range(ts, a.defaultPreset)
	}

	span := ts.Span()
	start, end := span.Start, span.End
	if sel.Start != nil {
		start = *sel.Start
	}
	if sel.End != nil {
		end = *sel.End
	}
	return contracts.NewDateRange(start, end)
}
