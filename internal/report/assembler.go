package report

import (
	"errors"
	"fmt"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/metrics"
	"github.com/wonny/fundscope/internal/reportconfig"
	"github.com/wonny/fundscope/internal/series"
	"github.com/wonny/fundscope/pkg/logger"
)

// calculator fills the kind-specific part of a result from the range slice
type calculator func(a *Assembler, full, slice contracts.TimeSeries, r contracts.DateRange, out *contracts.MetricsResult) error

// Assembler selects and computes the metrics of one report.
// It holds only immutable settings, so one instance can serve concurrent requests.
// ⭐ SSOT: fund-type dispatch happens here and nowhere else
type Assembler struct {
	riskFree       float64
	includeRolling bool
	defaultPreset  string
	presets        *series.PresetSet
	calculators    map[contracts.FundKind]calculator
	logger         *logger.Logger
}

// NewAssembler creates an assembler from report settings
func NewAssembler(cfg *reportconfig.Config, log *logger.Logger) (*Assembler, error) {
	if err := reportconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid report config: %w", err)
	}

	presets, err := cfg.PresetSet()
	if err != nil {
		return nil, fmt.Errorf("build presets: %w", err)
	}

	return &Assembler{
		riskFree:       cfg.Metrics.RiskFreeRatePct,
		includeRolling: cfg.Metrics.IncludeRollingSeries,
		defaultPreset:  cfg.Ranges.DefaultPreset,
		presets:        presets,
		calculators: map[contracts.FundKind]calculator{
			contracts.FundKindStandard: standardCalculator,
			contracts.FundKindMoney:    moneyCalculator,
		},
		logger: log,
	}, nil
}

// Assemble normalizes r, validates it against ts, slices the series and
// computes the variant metrics for info's kind plus the full-series statistics.
func (a *Assembler) Assemble(ts contracts.TimeSeries, info contracts.FundInfo, r contracts.DateRange) (*contracts.MetricsResult, error) {
	if ts.IsEmpty() {
		return nil, fmt.Errorf("fund %s: %w", info.Code, contracts.ErrEmptyRange)
	}

	// 1. 기간 검증 (경계는 UTC 자정으로 정규화)
	r, err := contracts.NewDateRange(r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}
	span := ts.Span()
	if !r.Within(span) {
		return nil, fmt.Errorf("range %s outside series span %s: %w", r, span, contracts.ErrInvalidRange)
	}

	// 2. 기간 슬라이스
	slice, err := series.Slice(ts, r)
	if err != nil {
		return nil, err
	}

	// 3. 펀드 유형별 계산
	kind := info.Kind()
	calc, ok := a.calculators[kind]
	if !ok {
		return nil, fmt.Errorf("no calculator for fund kind %q", kind)
	}

	global, err := metrics.Global(ts)
	if err != nil {
		return nil, err
	}

	result := &contracts.MetricsResult{
		Kind:   kind,
		Range:  r,
		Global: global,
	}
	if err := calc(a, ts, slice, r, result); err != nil {
		return nil, fmt.Errorf("fund %s %s metrics over %s: %w", info.Code, kind, r, err)
	}

	a.logger.WithFields(map[string]interface{}{
		"fund_code":     info.Code,
		"kind":          kind,
		"range":         r.String(),
		"trading_days":  result.TradingDays(),
		"calendar_days": result.CalendarDays(),
	}).Debug("Report assembled")

	return result, nil
}

// AssemblePreset resolves a quick range ("1M", "1Y", "ALL", ...) and assembles it
func (a *Assembler) AssemblePreset(ts contracts.TimeSeries, info contracts.FundInfo, preset string) (*contracts.MetricsResult, error) {
	r, err := a.presets.Range(ts, preset)
	if err != nil {
		return nil, err
	}
	return a.Assemble(ts, info, r)
}

// Presets returns the configured quick ranges, shortest first
func (a *Assembler) Presets() []series.Preset {
	return a.presets.List()
}

// DefaultPreset is used when a request names neither a range nor a preset
func (a *Assembler) DefaultPreset() string {
	return a.defaultPreset
}

func standardCalculator(a *Assembler, _, slice contracts.TimeSeries, r contracts.DateRange, out *contracts.MetricsResult) error {
	m, err := metrics.Standard(slice, r, a.riskFree)
	if err != nil {
		return err
	}
	out.Standard = m
	return nil
}

func moneyCalculator(a *Assembler, full, slice contracts.TimeSeries, r contracts.DateRange, out *contracts.MetricsResult) error {
	m, err := metrics.MoneyFund(slice, r)
	if err != nil {
		return err
	}
	out.Money = m

	// 7일 연환산은 전체 시계열 기준, 7개 미만이면 생략
	stats, err := metrics.MoneyStats(full)
	if errors.Is(err, contracts.ErrInsufficientData) {
		a.logger.WithError(err).WithField("observations", full.Len()).Warn("Skipping 7-day yield statistics")
		return nil
	}
	if err != nil {
		return err
	}
	if !a.includeRolling {
		stats.Rolling7DayAnnual = nil
	}
	out.MoneyStats = stats
	return nil
}
