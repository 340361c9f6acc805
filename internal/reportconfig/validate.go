package reportconfig

import (
	"fmt"
	"strings"

	"github.com/wonny/fundscope/internal/series"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ConfigID == "" {
		return ValidationError{"meta.config_id", "required"}
	}

	// === Metrics ===
	if cfg.Metrics.RiskFreeRatePct < 0 || cfg.Metrics.RiskFreeRatePct > 20 {
		return ValidationError{"metrics.risk_free_rate_pct", "must be in [0, 20]"}
	}

	// === Ranges ===
	set, err := series.NewPresetSet(cfg.Ranges.Presets)
	if err != nil {
		return ValidationError{"ranges.presets", err.Error()}
	}

	def := strings.TrimSpace(cfg.Ranges.DefaultPreset)
	if def == "" {
		return ValidationError{"ranges.default_preset", "required"}
	}
	if !strings.EqualFold(def, series.PresetAll) {
		if _, ok := set.Lookup(def); !ok {
			return ValidationError{"ranges.default_preset", fmt.Sprintf("unknown preset %q", def)}
		}
	}

	return nil
}

// Warn returns non-fatal findings
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if len(cfg.Ranges.Presets) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_PRESETS",
			Message: "빠른 기간 선택이 없음: ALL만 사용 가능",
		})
	}

	// 무위험 수익률 5% 초과 경고
	if cfg.Metrics.RiskFreeRatePct > 5 {
		warnings = append(warnings, Warning{
			Code:    "HIGH_RISK_FREE",
			Message: "risk_free_rate_pct > 5%: Sharpe ratio가 과소 평가될 수 있음",
		})
	}

	return warnings
}
