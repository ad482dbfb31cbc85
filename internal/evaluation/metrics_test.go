package evaluation

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
)

func sampleOutcomes() []*sim.Outcome {
	return []*sim.Outcome{
		{EpisodeID: 0, StartMonth: 0, FinalWealth: 1.0,
			AllocationPath: []policy.Action{12, 12}},
		{EpisodeID: 1, StartMonth: 1, FinalWealth: 2.0,
			AllocationPath: []policy.Action{12, 16}},
		{EpisodeID: 2, StartMonth: 2, FinalWealth: 0.5,
			AllocationPath: []policy.Action{8, 8}},
		{EpisodeID: 3, StartMonth: 3, Depleted: true, MonthsUntilDepletion: 12,
			FinalWealth: 0, AllocationPath: []policy.Action{12}},
	}
}

// TestNewRiskReport tests the aggregate statistics over a known outcome set
func TestNewRiskReport(t *testing.T) {
	report := NewRiskReport("rebalance 60%", 2, 0.04, sampleOutcomes())

	assert.Equal(t, "rebalance 60%", report.PolicyName)
	assert.Equal(t, 2, report.HorizonYears)
	assert.Equal(t, 0.04, report.SpendingRate)
	assert.Equal(t, 4, report.Episodes)
	assert.Equal(t, 1, report.Shortfalls)
	assert.Equal(t, 0.25, report.ProbabilityOfShortfall)
	// the one depleted episode ran out after year one of two
	assert.InDelta(t, 1.0, report.ExpectedShortfallDuration, 1e-12)
	assert.InDelta(t, 0.875, report.MeanFinalWealth, 1e-12)
	assert.Equal(t, 0.5, report.MedianFinalWealth)
	assert.Equal(t, 2.0, report.Percentile95FinalWealth)

	require.Len(t, report.MeanAllocationByYear, 2)
	// year 0: (0.60+0.60+0.40+0.60)/4, year 1: (0.60+0.80+0.40)/3
	assert.InDelta(t, 0.55, report.MeanAllocationByYear[0], 1e-12)
	assert.InDelta(t, 0.60, report.MeanAllocationByYear[1], 1e-12)
}

// TestNewRiskReport_OrderIndependent tests that outcome ordering never
// changes any aggregate
func TestNewRiskReport_OrderIndependent(t *testing.T) {
	outcomes := sampleOutcomes()
	baseline := NewRiskReport("p", 2, 0.04, outcomes)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(outcomes), func(a, b int) {
			outcomes[a], outcomes[b] = outcomes[b], outcomes[a]
		})
		shuffled := NewRiskReport("p", 2, 0.04, outcomes)
		assert.Equal(t, baseline, shuffled)
	}
}

// TestNewRiskReport_NoShortfalls tests the undefined-duration case
func TestNewRiskReport_NoShortfalls(t *testing.T) {
	outcomes := []*sim.Outcome{
		{FinalWealth: 1.0, AllocationPath: []policy.Action{12}},
		{FinalWealth: 1.2, AllocationPath: []policy.Action{12}},
	}
	report := NewRiskReport("p", 1, 0.04, outcomes)

	assert.Equal(t, 0.0, report.ProbabilityOfShortfall)
	assert.True(t, math.IsNaN(report.ExpectedShortfallDuration))
}

// TestRiskReport_MarshalJSON tests that the undefined shortfall duration is
// omitted rather than emitted as NaN
func TestRiskReport_MarshalJSON(t *testing.T) {
	report := NewRiskReport("p", 1, 0.04, []*sim.Outcome{
		{FinalWealth: 1.0, AllocationPath: []policy.Action{12}},
	})

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "expected_shortfall_duration")
	assert.Equal(t, "p", decoded["policy_name"])

	withShortfall := NewRiskReport("p", 2, 0.04, sampleOutcomes())
	raw, err = json.Marshal(withShortfall)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "expected_shortfall_duration")
	assert.InDelta(t, 1.0, decoded["expected_shortfall_duration"], 1e-12)
}

// TestRiskReport_MarshalJSON_SingleEpisode tests that a one-episode report
// still serializes: the final-wealth spread is undefined over one sample and
// must be omitted, not emitted as NaN
func TestRiskReport_MarshalJSON_SingleEpisode(t *testing.T) {
	report := NewRiskReport("p", 2, 0.04, []*sim.Outcome{
		{FinalWealth: 0.92, AllocationPath: []policy.Action{12, 12}},
	})
	require.True(t, math.IsNaN(report.StdDevFinalWealth))

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "stddev_final_wealth")
	assert.NotContains(t, decoded, "expected_shortfall_duration")
	assert.Equal(t, 0.92, decoded["mean_final_wealth"])
}

// TestNewRiskReport_Empty tests the zero-outcome edge
func TestNewRiskReport_Empty(t *testing.T) {
	report := NewRiskReport("p", 2, 0.04, nil)
	assert.Equal(t, 0, report.Episodes)
	assert.True(t, math.IsNaN(report.ExpectedShortfallDuration))
}
