package reportconfig

import "github.com/wonny/fundscope/internal/series"

// Config는 리포트 생성 설정 (YAML)
type Config struct {
	Meta    Meta    `yaml:"meta" json:"meta"`
	Metrics Metrics `yaml:"metrics" json:"metrics"`
	Ranges  Ranges  `yaml:"ranges" json:"ranges"`
}

// Meta 메타 정보
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
}

// Metrics 지표 계산 옵션
type Metrics struct {
	// RiskFreeRatePct is subtracted from the annualized return in the Sharpe ratio (percent)
	RiskFreeRatePct float64 `yaml:"risk_free_rate_pct" json:"risk_free_rate_pct"`
	// IncludeRollingSeries keeps the rolling 7-day annualized series in money-fund results
	IncludeRollingSeries bool `yaml:"include_rolling_series" json:"include_rolling_series"`
}

// Ranges 빠른 기간 선택
type Ranges struct {
	DefaultPreset string          `yaml:"default_preset" json:"default_preset"`
	Presets       []series.Preset `yaml:"presets" json:"presets"`
}

// Default returns the built-in configuration used when no file is given
func Default() *Config {
	presets := make([]series.Preset, len(series.DefaultPresets))
	copy(presets, series.DefaultPresets)

	return &Config{
		Meta: Meta{
			ConfigID: "default",
			Version:  "1",
		},
		Metrics: Metrics{
			RiskFreeRatePct:      0,
			IncludeRollingSeries: true,
		},
		Ranges: Ranges{
			DefaultPreset: series.PresetAll,
			Presets:       presets,
		},
	}
}

// PresetSet builds the preset index of this configuration
func (c *Config) PresetSet() (*series.PresetSet, error) {
	return series.NewPresetSet(c.Ranges.Presets)
}
