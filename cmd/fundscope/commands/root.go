package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	reportConfigFile string
	sourceFlag       string
	dataDir          string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundscope",
	Short: "Fundscope - 펀드 기준가 성과/리스크 분석",
	Long: `Fundscope Unified CLI

Computes performance and risk metrics from fund NAV history.
Standard funds use unit NAV (252 trading days per year).
Money-market funds use the per-10,000-share daily yield (365 calendar days).

Usage:
  go run ./cmd/fundscope [command]

Examples:
  go run ./cmd/fundscope report --file data/110011.csv --preset 1Y
  go run ./cmd/fundscope report --code 000198 --start 2025-01-01
  go run ./cmd/fundscope presets
  go run ./cmd/fundscope api --port 8080
  go run ./cmd/fundscope test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&reportConfigFile, "report-config", "", "report config YAML (default: REPORT_CONFIG or built-in)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "NAV source: file|postgres (default: NAV_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of the file source (default: NAV_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
