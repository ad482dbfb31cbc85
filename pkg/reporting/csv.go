package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// DefaultCSVReporter implements CSV output functionality.
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter.
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteSurfaceCSV writes one row per grid cell, suitable for heatmap or
// contour rendering by external plotting tools.
func (r *DefaultCSVReporter) WriteSurfaceCSV(surface *evaluation.Surface, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"spending_rate",
		"target_equity",
		"probability_of_shortfall",
		"expected_shortfall_duration_years",
		"percentile_95_final_wealth",
		"median_final_wealth",
	}); err != nil {
		return err
	}

	for _, cell := range surface.Cells {
		rep := cell.Report
		if err := w.Write([]string{
			strconv.FormatFloat(cell.SpendingRate, 'f', 4, 64),
			strconv.FormatFloat(cell.TargetEquity, 'f', 2, 64),
			strconv.FormatFloat(rep.ProbabilityOfShortfall, 'f', 6, 64),
			strconv.FormatFloat(rep.ExpectedShortfallDuration, 'f', 3, 64),
			strconv.FormatFloat(rep.Percentile95FinalWealth, 'f', 6, 64),
			strconv.FormatFloat(rep.MedianFinalWealth, 'f', 6, 64),
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteOutcomesCSV writes the per-episode outcomes of a single evaluation.
func (r *DefaultCSVReporter) WriteOutcomesCSV(outcomes []*sim.Outcome, horizonYears int, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"episode_id",
		"start_month",
		"depleted",
		"months_until_depletion",
		"unfunded_years",
		"final_wealth",
	}); err != nil {
		return err
	}

	for _, out := range outcomes {
		months := ""
		unfunded := ""
		if out.Depleted {
			months = strconv.Itoa(out.MonthsUntilDepletion)
			unfunded = fmt.Sprintf("%.2f", float64(horizonYears)-float64(out.MonthsUntilDepletion)/12)
		}
		if err := w.Write([]string{
			strconv.Itoa(out.EpisodeID),
			strconv.Itoa(out.StartMonth),
			strconv.FormatBool(out.Depleted),
			months,
			unfunded,
			strconv.FormatFloat(out.FinalWealth, 'f', 6, 64),
		}); err != nil {
			return err
		}
	}
	return nil
}
