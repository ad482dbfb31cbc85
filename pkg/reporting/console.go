package reporting

import (
	"fmt"
	"math"
	"os"

	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultConsoleReporter implements console output functionality.
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter.
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputReport prints one evaluation's risk report.
func (r *DefaultConsoleReporter) OutputReport(report *evaluation.RiskReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("RISK REPORT")
	t.SetStyle(table.StyleRounded)

	duration := "n/a"
	if !math.IsNaN(report.ExpectedShortfallDuration) {
		duration = fmt.Sprintf("%.1f years", report.ExpectedShortfallDuration)
	}

	t.AppendRows([]table.Row{
		{"🎯 Policy", report.PolicyName},
		{"⏳ Horizon", fmt.Sprintf("%d years", report.HorizonYears)},
		{"💸 Spending Rate", fmt.Sprintf("%.1f%%", report.SpendingRate*100)},
		{"📚 Episodes", report.Episodes},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"📉 Shortfall Probability", fmt.Sprintf("%.2f%%", report.ProbabilityOfShortfall*100)},
		{"📉 Shortfalls", report.Shortfalls},
		{"⌛ Expected Shortfall Duration", duration},
		{"💰 95th Pct Final Wealth", fmt.Sprintf("%.3f", report.Percentile95FinalWealth)},
		{"💰 Median Final Wealth", fmt.Sprintf("%.3f", report.MedianFinalWealth)},
		{"💰 Mean Final Wealth", fmt.Sprintf("%.3f ± %.3f", report.MeanFinalWealth, report.StdDevFinalWealth)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 30, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// OutputSurfaceSummary prints the shortfall-probability surface, one row per
// spending rate with the safest and riskiest allocation on that row.
func (r *DefaultConsoleReporter) OutputSurfaceSummary(surface *evaluation.Surface) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("SHORTFALL SURFACE (%d-year horizon, %d episodes)",
		surface.HorizonYears, surface.Episodes))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Spending", "Best Alloc", "Min P(shortfall)", "Worst Alloc", "Max P(shortfall)"})

	for _, spending := range surface.SpendingRates {
		bestAlloc, worstAlloc := math.NaN(), math.NaN()
		minProb, maxProb := math.Inf(1), math.Inf(-1)
		for _, cell := range surface.Cells {
			if cell.SpendingRate != spending {
				continue
			}
			p := cell.Report.ProbabilityOfShortfall
			if p < minProb {
				minProb = p
				bestAlloc = cell.TargetEquity
			}
			if p > maxProb {
				maxProb = p
				worstAlloc = cell.TargetEquity
			}
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%.1f%%", spending*100),
			fmt.Sprintf("%.0f%%", bestAlloc*100),
			fmt.Sprintf("%.2f%%", minProb*100),
			fmt.Sprintf("%.0f%%", worstAlloc*100),
			fmt.Sprintf("%.2f%%", maxProb*100),
		})
	}

	t.Render()
	fmt.Println()
}
