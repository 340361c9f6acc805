package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/fundscope/pkg/logger"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "빠른 기간 선택 목록",
	Long: `Lists the configured quick ranges and the default one.

Example:
  go run ./cmd/fundscope presets
  go run ./cmd/fundscope presets --report-config config/report.yaml`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newAssembler(cfg, logger.New(cfg))
	if err != nil {
		return err
	}

	PrintPresets(cmd.OutOrStdout(), a.Presets(), a.DefaultPreset())
	return nil
}
