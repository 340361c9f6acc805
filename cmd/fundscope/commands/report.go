package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/report"
	"github.com/wonny/fundscope/internal/source"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "펀드 성과/리스크 리포트",
	Long: `Computes the metrics of one fund over a date range.

The series comes either from a local file (--file) or from the
configured NAV source by fund code (--code).
The range is a quick preset (--preset) or explicit bounds (--start/--end);
a missing bound defaults to the first or latest observation.

Example:
  go run ./cmd/fundscope report --file data/110011.csv --preset 1Y
  go run ./cmd/fundscope report --file data/000198.csv --money --start 2025-01-01
  go run ./cmd/fundscope report --code 110011 --source postgres --json`,
	RunE: runReport,
}

var (
	reportCode   string
	reportFile   string
	reportName   string
	reportMoney  bool
	reportStart  string
	reportEnd    string
	reportPreset string
	reportJSON   bool
	reportSeries bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportCode, "code", "", "fund code")
	reportCmd.Flags().StringVar(&reportFile, "file", "", "NAV file (.csv or .json) instead of the configured source")
	reportCmd.Flags().StringVar(&reportName, "name", "", "fund name shown with --file")
	reportCmd.Flags().BoolVar(&reportMoney, "money", false, "treat --file as a money-market fund (per-10,000-share yield)")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "range end (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportPreset, "preset", "", "quick range (1W, 1M, 3M, 6M, 1Y, 2Y, 3Y, ALL)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print JSON instead of text")
	reportCmd.Flags().BoolVar(&reportSeries, "series", false, "include the full series in JSON output")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportCode == "" && reportFile == "" {
		return fmt.Errorf("either --code or --file is required")
	}

	sel, err := report.ParseSelection(reportStart, reportEnd, reportPreset)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx, reportFile == "")
	if err != nil {
		return err
	}
	defer a.Close()

	var rep *report.Report
	if reportFile != "" {
		rep, err = reportFromFile(a, sel)
	} else {
		rep, err = a.Service().Generate(ctx, reportCode, sel)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !reportJSON {
		PrintReport(out, rep)
		return nil
	}

	payload := map[string]interface{}{
		"fund":    rep.Fund,
		"metrics": rep.Metrics,
	}
	if reportSeries {
		payload["series"] = rep.Series
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func reportFromFile(a *app, sel report.Selection) (*report.Report, error) {
	ts, err := source.ReadFile(reportFile)
	if err != nil {
		return nil, err
	}

	code := reportCode
	if code == "" {
		code = strings.TrimSuffix(filepath.Base(reportFile), filepath.Ext(reportFile))
	}
	name := reportName
	if name == "" {
		name = code
	}

	info := contracts.FundInfo{Code: code, Name: name, IsMoneyFund: reportMoney}
	return a.Service().Build(info, ts, sel)
}
