package evaluation

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/hoangnd25/glidepath/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// RiskReport aggregates every episode outcome of one (policy, spending-rate)
// evaluation run. It is built once and never mutated; all statistics are
// order-independent over the outcome set.
type RiskReport struct {
	PolicyName   string  `json:"policy_name"`
	HorizonYears int     `json:"horizon_years"`
	SpendingRate float64 `json:"spending_rate"`

	Episodes   int `json:"episodes"`
	Shortfalls int `json:"shortfalls"`

	ProbabilityOfShortfall float64 `json:"probability_of_shortfall"`
	// ExpectedShortfallDuration is the mean unfunded years over depleted
	// episodes only; NaN when no episode depleted.
	ExpectedShortfallDuration float64 `json:"expected_shortfall_duration"`
	Percentile95FinalWealth   float64 `json:"percentile_95_final_wealth"`
	MedianFinalWealth         float64 `json:"median_final_wealth"`
	MeanFinalWealth           float64 `json:"mean_final_wealth"`
	StdDevFinalWealth         float64 `json:"stddev_final_wealth"`

	// MeanAllocationByYear is the mean equity fraction in effect at the
	// start of each retirement year, averaged across episodes.
	MeanAllocationByYear []float64 `json:"mean_allocation_by_year"`
}

// NewRiskReport computes the aggregate statistics over a full outcome set.
func NewRiskReport(policyName string, horizonYears int, spendingRate float64, outcomes []*sim.Outcome) *RiskReport {
	r := &RiskReport{
		PolicyName:   policyName,
		HorizonYears: horizonYears,
		SpendingRate: spendingRate,
		Episodes:     len(outcomes),
	}
	if len(outcomes) == 0 {
		r.ExpectedShortfallDuration = math.NaN()
		return r
	}

	finalWealth := make([]float64, 0, len(outcomes))
	var unfundedYears []float64
	allocSums := make([]float64, horizonYears)
	allocCounts := make([]int, horizonYears)

	for _, out := range outcomes {
		finalWealth = append(finalWealth, out.FinalWealth)
		if out.Depleted {
			r.Shortfalls++
			unfundedYears = append(unfundedYears, float64(horizonYears)-float64(out.MonthsUntilDepletion)/12)
		}
		for year, action := range out.AllocationPath {
			if year < horizonYears {
				allocSums[year] += action.Fraction()
				allocCounts[year]++
			}
		}
	}

	r.ProbabilityOfShortfall = float64(r.Shortfalls) / float64(r.Episodes)
	if len(unfundedYears) > 0 {
		r.ExpectedShortfallDuration = stat.Mean(unfundedYears, nil)
	} else {
		r.ExpectedShortfallDuration = math.NaN()
	}

	sort.Float64s(finalWealth)
	r.Percentile95FinalWealth = stat.Quantile(0.95, stat.Empirical, finalWealth, nil)
	r.MedianFinalWealth = stat.Quantile(0.5, stat.Empirical, finalWealth, nil)
	r.MeanFinalWealth = stat.Mean(finalWealth, nil)
	r.StdDevFinalWealth = stat.StdDev(finalWealth, nil)

	r.MeanAllocationByYear = make([]float64, horizonYears)
	for year := range allocSums {
		if allocCounts[year] > 0 {
			r.MeanAllocationByYear[year] = allocSums[year] / float64(allocCounts[year])
		}
	}
	return r
}

// MarshalJSON omits statistics that are undefined for the outcome set: the
// shortfall duration when no episode depleted, and the final-wealth spread
// when there is only one episode. NaN has no JSON representation.
func (r *RiskReport) MarshalJSON() ([]byte, error) {
	type alias RiskReport
	aux := struct {
		*alias
		ExpectedShortfallDuration *float64 `json:"expected_shortfall_duration,omitempty"`
		StdDevFinalWealth         *float64 `json:"stddev_final_wealth,omitempty"`
	}{alias: (*alias)(r)}
	if !math.IsNaN(r.ExpectedShortfallDuration) {
		aux.ExpectedShortfallDuration = &r.ExpectedShortfallDuration
	}
	if !math.IsNaN(r.StdDevFinalWealth) {
		aux.StdDevFinalWealth = &r.StdDevFinalWealth
	}
	return json.Marshal(aux)
}
