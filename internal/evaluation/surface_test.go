package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
	"github.com/hoangnd25/glidepath/pkg/types"
)

func flatDataset(t *testing.T, months, horizonYears int) *episode.Dataset {
	t.Helper()
	series := make(types.MarketSeries, months)
	for i := range series {
		series[i] = types.MonthlyRecord{MonthIndex: i}
	}
	dataset, err := episode.NewDataset(series, horizonYears)
	require.NoError(t, err)
	return dataset
}

// TestGridSpec_ExpandAxis tests that the axes land exactly on the nominal
// grid points despite float stepping
func TestGridSpec_ExpandAxis(t *testing.T) {
	grid := DefaultGridSpec()

	allocations := grid.Allocations()
	require.Len(t, allocations, 21)
	assert.Equal(t, 0.0, allocations[0])
	assert.Equal(t, 0.55, allocations[11])
	assert.Equal(t, 1.0, allocations[20])

	rates := grid.SpendingRates()
	require.Len(t, rates, 21)
	assert.Equal(t, 0.030, rates[0])
	assert.Equal(t, 0.041, rates[11])
	assert.Equal(t, 0.050, rates[20])
}

// TestGridSpec_Validate tests rejection of empty and inverted axes
func TestGridSpec_Validate(t *testing.T) {
	assert.NoError(t, DefaultGridSpec().Validate())

	bad := DefaultGridSpec()
	bad.AllocationStep = 0
	assert.Error(t, bad.Validate())

	bad = DefaultGridSpec()
	bad.SpendingMax = bad.SpendingMin - 0.01
	assert.Error(t, bad.Validate())
}

// TestSweep tests a small surface end to end: a spending rate the flat
// series can fund and one it cannot
func TestSweep(t *testing.T) {
	dataset := flatDataset(t, 16, 1)
	grid := GridSpec{
		AllocationMin:  0.0,
		AllocationMax:  1.0,
		AllocationStep: 0.5,
		SpendingMin:    0.5,
		SpendingMax:    1.5,
		SpendingStep:   1.0,
	}
	params := sim.Params{InitialWealth: 1.0}

	surface, err := Sweep(dataset, grid, params, true, 4, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, surface.HorizonYears)
	assert.Equal(t, 5, surface.Episodes)
	require.Len(t, surface.Cells, 6)

	// zero returns: spending half the portfolio always survives a one-year
	// horizon, spending 1.5x never does, at every allocation
	assert.Equal(t, []float64{0, 0, 0}, surface.ShortfallRow(0.5))
	assert.Equal(t, []float64{1, 1, 1}, surface.ShortfallRow(1.5))

	assert.Equal(t, 0.5, surface.MaxSafeSpendingRate(0.5, 0.05))
	assert.True(t, math.IsNaN(surface.MaxSafeSpendingRate(0.5, -1)))
}

// TestSweep_Deterministic tests that worker scheduling never changes the
// cell order or any aggregate
func TestSweep_Deterministic(t *testing.T) {
	dataset := flatDataset(t, 30, 2)
	grid := GridSpec{
		AllocationMin:  0.0,
		AllocationMax:  1.0,
		AllocationStep: 0.25,
		SpendingMin:    0.03,
		SpendingMax:    0.05,
		SpendingStep:   0.01,
	}
	params := sim.Params{InitialWealth: 1.0}

	first, err := Sweep(dataset, grid, params, true, 1, nil)
	require.NoError(t, err)
	second, err := Sweep(dataset, grid, params, true, 8, nil)
	require.NoError(t, err)

	require.Len(t, second.Cells, len(first.Cells))
	for i, cell := range first.Cells {
		assert.Equal(t, cell.TargetEquity, second.Cells[i].TargetEquity)
		assert.Equal(t, cell.SpendingRate, second.Cells[i].SpendingRate)
		assert.Equal(t, cell.Report.ProbabilityOfShortfall, second.Cells[i].Report.ProbabilityOfShortfall)
		assert.Equal(t, cell.Report.MeanFinalWealth, second.Cells[i].Report.MeanFinalWealth)
		assert.Equal(t, cell.Report.MeanAllocationByYear, second.Cells[i].Report.MeanAllocationByYear)
	}
}

// TestSweep_AbortsOnCellError tests whole-batch failure when any cell fails
func TestSweep_AbortsOnCellError(t *testing.T) {
	dataset := flatDataset(t, 16, 1)
	params := sim.Params{InitialWealth: -1.0}

	_, err := Sweep(dataset, DefaultGridSpec(), params, true, 2, nil)
	assert.Error(t, err)
}

// TestSweep_ProgressCallback tests that the callback fires once per cell
func TestSweep_ProgressCallback(t *testing.T) {
	dataset := flatDataset(t, 16, 1)
	grid := GridSpec{
		AllocationMin:  0.0,
		AllocationMax:  1.0,
		AllocationStep: 0.5,
		SpendingMin:    0.04,
		SpendingMax:    0.04,
		SpendingStep:   0.01,
	}

	calls := 0
	_, err := Sweep(dataset, grid, sim.Params{InitialWealth: 1.0}, true, 2, func() { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// TestEvaluator tests the sequential full-dataset evaluation path
func TestEvaluator(t *testing.T) {
	dataset := flatDataset(t, 30, 2)
	pol, err := policy.NewRebalance(0.60)
	require.NoError(t, err)

	evaluator, err := NewEvaluator(dataset, sim.Params{InitialWealth: 1.0, SpendingRate: 0.04})
	require.NoError(t, err)

	report, outcomes, err := evaluator.Evaluate(pol)
	require.NoError(t, err)
	assert.Len(t, outcomes, 7)
	assert.Equal(t, 7, report.Episodes)
	assert.Equal(t, 0.0, report.ProbabilityOfShortfall)
	for _, out := range outcomes {
		assert.InDelta(t, 0.92, out.FinalWealth, 1e-12)
	}

	// the grid-step invariant applies to policies, and a spending rate the
	// portfolio cannot fund depletes every overlapping window
	evaluator, err = NewEvaluator(dataset, sim.Params{InitialWealth: 1.0, SpendingRate: 1.0})
	require.NoError(t, err)
	report, _, err = evaluator.Evaluate(pol)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.ProbabilityOfShortfall)
	assert.InDelta(t, 1.0, report.ExpectedShortfallDuration, 1e-12)
}

// TestNewEvaluator_InvalidInputs tests evaluator construction guards
func TestNewEvaluator_InvalidInputs(t *testing.T) {
	_, err := NewEvaluator(nil, sim.Params{InitialWealth: 1.0})
	assert.Error(t, err)

	dataset := flatDataset(t, 16, 1)
	_, err = NewEvaluator(dataset, sim.Params{InitialWealth: 0})
	assert.Error(t, err)
}
