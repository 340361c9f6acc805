package series

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/fundscope/internal/contracts"
)

// PresetAll selects the whole series span
const PresetAll = "ALL"

// Preset is a quick range: the last Days calendar days up to the latest observation
type Preset struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
	Days  int    `yaml:"days" json:"days"`
}

// DefaultPresets are the quick ranges offered next to the date pickers
var DefaultPresets = []Preset{
	{Name: "1W", Label: "近一周", Days: 7},
	{Name: "1M", Label: "近一月", Days: 30},
	{Name: "3M", Label: "近三月", Days: 90},
	{Name: "6M", Label: "近半年", Days: 180},
	{Name: "1Y", Label: "近一年", Days: 365},
	{Name: "2Y", Label: "近两年", Days: 730},
	{Name: "3Y", Label: "近三年", Days: 1095},
}

// PresetSet resolves preset names case-insensitively
type PresetSet struct {
	byName map[string]Preset
	order  []Preset
}

// NewPresetSet indexes presets by upper-cased name. Days must be positive and names unique.
func NewPresetSet(presets []Preset) (*PresetSet, error) {
	set := &PresetSet{byName: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		key := strings.ToUpper(strings.TrimSpace(p.Name))
		if key == "" || key == PresetAll {
			return nil, fmt.Errorf("preset name %q is reserved or empty", p.Name)
		}
		if p.Days <= 0 {
			return nil, fmt.Errorf("preset %s: days must be positive, got %d", p.Name, p.Days)
		}
		if _, dup := set.byName[key]; dup {
			return nil, fmt.Errorf("preset %s declared twice", p.Name)
		}
		p.Name = key
		set.byName[key] = p
		set.order = append(set.order, p)
	}
	sort.SliceStable(set.order, func(i, j int) bool { return set.order[i].Days < set.order[j].Days })
	return set, nil
}

// List returns the presets from shortest to longest
func (s *PresetSet) List() []Preset {
	out := make([]Preset, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup finds a preset by name
func (s *PresetSet) Lookup(name string) (Preset, bool) {
	p, ok := s.byName[strings.ToUpper(strings.TrimSpace(name))]
	return p, ok
}

// Range resolves name against ts: end is the latest date, start is end minus
// the preset days, clamped to the first date. "ALL" returns the full span.
func (s *PresetSet) Range(ts contracts.TimeSeries, name string) (contracts.DateRange, error) {
	if ts.IsEmpty() {
		return contracts.DateRange{}, fmt.Errorf("preset %s: %w", name, contracts.ErrEmptyRange)
	}

	if strings.EqualFold(strings.TrimSpace(name), PresetAll) {
		return ts.Span(), nil
	}

	p, ok := s.Lookup(name)
	if !ok {
		return contracts.DateRange{}, fmt.Errorf("preset %q: %w", name, contracts.ErrUnknownPreset)
	}

	return PresetRange(ts, p.Days), nil
}

// PresetRange returns [latest - days, latest], start clamped to the first observation
func PresetRange(ts contracts.TimeSeries, days int) contracts.DateRange {
	span := ts.Span()
	start := span.End.AddDate(0, 0, -days)
	if start.Before(span.Start) {
		start = span.Start // 설정일 이전으로는 가지 않음
	}
	return contracts.DateRange{Start: start, End: span.End}
}
