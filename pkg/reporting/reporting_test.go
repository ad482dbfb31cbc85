package reporting

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
)

func sampleReport() *evaluation.RiskReport {
	return evaluation.NewRiskReport("rebalance 60%", 2, 0.04, []*sim.Outcome{
		{EpisodeID: 0, FinalWealth: 1.2, AllocationPath: []policy.Action{12, 12}},
		{EpisodeID: 1, Depleted: true, MonthsUntilDepletion: 18, FinalWealth: 0,
			AllocationPath: []policy.Action{12, 12}},
	})
}

func sampleSurface() *evaluation.Surface {
	return &evaluation.Surface{
		HorizonYears:  2,
		Episodes:      2,
		Rebalance:     true,
		Allocations:   []float64{0.4, 0.6},
		SpendingRates: []float64{0.04},
		Cells: []evaluation.Cell{
			{TargetEquity: 0.4, SpendingRate: 0.04, Report: sampleReport()},
			{TargetEquity: 0.6, SpendingRate: 0.04, Report: sampleReport()},
		},
	}
}

// TestWriteOutcomesCSV tests the per-episode CSV layout
func TestWriteOutcomesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episodes.csv")
	outcomes := []*sim.Outcome{
		{EpisodeID: 0, StartMonth: 5, FinalWealth: 1.25},
		{EpisodeID: 1, StartMonth: 6, Depleted: true, MonthsUntilDepletion: 18, FinalWealth: 0},
	}

	require.NoError(t, NewDefaultCSVReporter().WriteOutcomesCSV(outcomes, 2, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "episode_id", rows[0][0])
	assert.Equal(t, []string{"0", "5", "false", "", "", "1.250000"}, rows[1])
	assert.Equal(t, []string{"1", "6", "true", "18", "0.50", "0.000000"}, rows[2])
}

// TestWriteSurfaceCSV tests one row per grid cell
func TestWriteSurfaceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.csv")
	require.NoError(t, NewDefaultCSVReporter().WriteSurfaceCSV(sampleSurface(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "spending_rate", rows[0][0])
	assert.Equal(t, "0.0400", rows[1][0])
	assert.Equal(t, "0.40", rows[1][1])
	assert.Equal(t, "0.500000", rows[1][2])
}

// TestWriteReportJSON tests the JSON artifact round trip
func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, NewDefaultJSONReporter().WriteReportJSON(sampleReport(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "rebalance 60%", decoded["policy_name"])
	assert.Equal(t, 0.5, decoded["probability_of_shortfall"])
}

// TestWriteReportJSON_SingleEpisode tests the exact-fit dataset case: one
// outcome leaves the final-wealth spread undefined and the artifact must
// still be written
func TestWriteReportJSON_SingleEpisode(t *testing.T) {
	report := evaluation.NewRiskReport("rebalance 60%", 2, 0.04, []*sim.Outcome{
		{EpisodeID: 0, FinalWealth: 0.92, AllocationPath: []policy.Action{12, 12}},
	})

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, NewDefaultJSONReporter().WriteReportJSON(report, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "stddev_final_wealth")
	assert.Equal(t, float64(1), decoded["episodes"])
}

// TestWriteSurfaceXLSX tests that the workbook is written with both sheets
func TestWriteSurfaceXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.xlsx")
	require.NoError(t, NewDefaultExcelReporter().WriteSurfaceXLSX(sampleSurface(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	sheets := fx.GetSheetList()
	assert.Contains(t, sheets, "Shortfall Surface")
	assert.Contains(t, sheets, "Summary")
}

// TestEnsureDirectoryExists tests that the named directory itself is created
func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results", "rebalance-60pct_30y")
	require.NoError(t, NewDefaultPathManager().EnsureDirectoryExists(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestDefaultOutputDir tests the run directory slug
func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "rebalance-60pct_30y"),
		DefaultOutputDir("rebalance 60%", 30))
	assert.Equal(t, filepath.Join("results", "run_30y"), DefaultOutputDir("", 30))
}
