package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/report"
	"github.com/wonny/fundscope/internal/series"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	doubleSeparator = "═══════════════════════════════════════════════════════════"
	separator       = "───────────────────────────────────────────────────────────"
)

// PrintReport writes the text rendering of a report
func PrintReport(w io.Writer, rep *report.Report) {
	m := rep.Metrics

	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintf(w, "  %s (%s)\n", rep.Fund.Name, rep.Fund.Code)
	fmt.Fprintln(w, separator)
	if rep.Fund.Company != "" {
		fmt.Fprintf(w, "  Company   : %s\n", rep.Fund.Company)
	}
	if rep.Fund.Type != "" {
		fmt.Fprintf(w, "  Type      : %s\n", rep.Fund.Type)
	}
	fmt.Fprintf(w, "  Kind      : %s\n", m.Kind)
	fmt.Fprintf(w, "  Period    : %s ~ %s\n", formatDate(m.Range.Start), formatDate(m.Range.End))
	fmt.Fprintf(w, "  Days      : %d trading / %d calendar\n", m.TradingDays(), m.CalendarDays())
	fmt.Fprintln(w, separator)

	switch m.Kind {
	case contracts.FundKindMoney:
		printMoney(w, m)
	default:
		printStandard(w, m)
	}

	fmt.Fprintln(w, separator)
	printGlobal(w, m)
	fmt.Fprintln(w, doubleSeparator)
}

func printStandard(w io.Writer, m *contracts.MetricsResult) {
	s := m.Standard
	fmt.Fprintf(w, "  Period Return        : %s\n", pct(s.PeriodReturn))
	fmt.Fprintf(w, "  Annualized Return    : %s\n", pct(s.AnnualizedReturn))
	if s.SingleReturn {
		fmt.Fprintln(w, "  Annualized Volatility: N/A (single return)")
	} else {
		fmt.Fprintf(w, "  Annualized Volatility: %s\n", pct(s.AnnualizedVolatility))
	}
	fmt.Fprintf(w, "  Max Drawdown         : %s\n", pct(s.MaxDrawdown))
	if s.SharpeRatio != nil {
		fmt.Fprintf(w, "  Sharpe Ratio         : %.4f\n", *s.SharpeRatio)
	} else {
		fmt.Fprintln(w, "  Sharpe Ratio         : N/A")
	}
	fmt.Fprintf(w, "  NAV                  : %.4f -> %.4f\n", s.PeriodStartNAV, s.PeriodEndNAV)
}

func printMoney(w io.Writer, m *contracts.MetricsResult) {
	fmt.Fprintf(w, "  Cumulative Yield     : %s\n", pct(m.Money.CumulativeYield))
	fmt.Fprintf(w, "  Annualized Yield     : %s\n", pct(m.Money.AnnualizedYield))

	if st := m.MoneyStats; st != nil {
		fmt.Fprintf(w, "  7-Day Annual (latest): %s\n", pct(st.Latest7DayAnnual))
		fmt.Fprintf(w, "  7-Day Annual (max)   : %s on %s\n", pct(st.Max7DayAnnual), formatDate(st.Max7DayDate))
		fmt.Fprintf(w, "  7-Day Annual (min)   : %s on %s\n", pct(st.Min7DayAnnual), formatDate(st.Min7DayDate))
	} else {
		fmt.Fprintln(w, "  7-Day Annual         : N/A (fewer than 7 observations)")
	}
}

func printGlobal(w io.Writer, m *contracts.MetricsResult) {
	g := m.Global
	unit := "NAV"
	if m.Kind == contracts.FundKindMoney {
		unit = "Yield/10k"
	}

	fmt.Fprintf(w, "  Latest %-10s    : %.4f (%s)\n", unit, g.LatestNAV, formatDate(g.LatestDate))
	fmt.Fprintf(w, "  Highest %-10s   : %.4f (%s)\n", unit, g.MaxNAV, formatDate(g.MaxNAVDate))
	fmt.Fprintf(w, "  Lowest %-10s    : %.4f (%s)\n", unit, g.MinNAV, formatDate(g.MinNAVDate))
	if g.TotalReturn != nil {
		fmt.Fprintf(w, "  Since Inception      : %s\n", pct(*g.TotalReturn))
	}
	fmt.Fprintf(w, "  Established          : %s\n", formatDate(g.EstablishmentDate))
}

// PrintPresets writes the quick range table
func PrintPresets(w io.Writer, presets []series.Preset, def string) {
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintf(w, "  %-6s %-8s %6s\n", "NAME", "LABEL", "DAYS")
	fmt.Fprintln(w, separator)
	for _, p := range presets {
		mark := ""
		if p.Name == def {
			mark = " (default)"
		}
		fmt.Fprintf(w, "  %-6s %-8s %6d%s\n", p.Name, p.Label, p.Days, mark)
	}
	allMark := ""
	if def == series.PresetAll {
		allMark = " (default)"
	}
	fmt.Fprintf(w, "  %-6s %-8s %6s%s\n", series.PresetAll, "全部", "-", allMark)
	fmt.Fprintln(w, doubleSeparator)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatDate(t time.Time) string {
	return t.Format(contracts.DateFormat)
}
