package evaluation

import (
	"fmt"
	"math"
	"sort"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// GridSpec describes the (target allocation, annual spending rate) grid a
// batch sweep covers. Steps are expressed in integer grid units to keep the
// cell set exact: allocations in 5% levels, spending in 0.1% increments.
type GridSpec struct {
	AllocationMin  float64 `json:"allocation_min"`
	AllocationMax  float64 `json:"allocation_max"`
	AllocationStep float64 `json:"allocation_step"`
	SpendingMin    float64 `json:"spending_min"`
	SpendingMax    float64 `json:"spending_max"`
	SpendingStep   float64 `json:"spending_step"`
}

// DefaultGridSpec is the standard sweep surface: equity 0-100% in 5% steps,
// spending 3.0-5.0% in 0.1% steps.
func DefaultGridSpec() GridSpec {
	return GridSpec{
		AllocationMin:  0.0,
		AllocationMax:  1.0,
		AllocationStep: 0.05,
		SpendingMin:    0.030,
		SpendingMax:    0.050,
		SpendingStep:   0.001,
	}
}

// Allocations expands the allocation axis.
func (g GridSpec) Allocations() []float64 {
	return expandAxis(g.AllocationMin, g.AllocationMax, g.AllocationStep)
}

// SpendingRates expands the spending axis.
func (g GridSpec) SpendingRates() []float64 {
	return expandAxis(g.SpendingMin, g.SpendingMax, g.SpendingStep)
}

// expandAxis walks min..max inclusive by step, rounding away float drift so
// the grid points land exactly on the nominal values.
func expandAxis(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return nil
	}
	var out []float64
	n := int(math.Round((max-min)/step)) + 1
	for i := 0; i < n; i++ {
		v := math.Round((min+float64(i)*step)*1e6) / 1e6
		out = append(out, v)
	}
	return out
}

// Validate rejects empty or inverted axes before any simulation starts.
func (g GridSpec) Validate() error {
	if len(g.Allocations()) == 0 {
		return fmt.Errorf("empty allocation axis: min %.3f max %.3f step %.3f",
			g.AllocationMin, g.AllocationMax, g.AllocationStep)
	}
	if len(g.SpendingRates()) == 0 {
		return fmt.Errorf("empty spending axis: min %.4f max %.4f step %.4f",
			g.SpendingMin, g.SpendingMax, g.SpendingStep)
	}
	return nil
}

// Cell is one evaluated point of the surface.
type Cell struct {
	TargetEquity float64     `json:"target_equity"`
	SpendingRate float64     `json:"spending_rate"`
	Report       *RiskReport `json:"report"`
}

// Surface is the 2-D shortfall-probability surface produced by a sweep,
// ordered by spending rate then allocation regardless of worker completion
// order.
type Surface struct {
	HorizonYears  int       `json:"horizon_years"`
	Episodes      int       `json:"episodes"`
	Rebalance     bool      `json:"rebalance"`
	Cells         []Cell    `json:"cells"`
	Allocations   []float64 `json:"allocations"`
	SpendingRates []float64 `json:"spending_rates"`
}

// Sweep evaluates every grid cell against the full dataset. Any cell failure
// aborts the whole sweep. The worker pool is an optimization only: the cell
// set and every aggregate are identical to a sequential run.
func Sweep(dataset *episode.Dataset, grid GridSpec, params sim.Params, rebalance bool, workers int, onCellDone func()) (*Surface, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	allocations := grid.Allocations()
	spendingRates := grid.SpendingRates()
	jobCount := len(allocations) * len(spendingRates)

	pool := NewWorkerPool(dataset, workers, jobCount)
	pool.Start()

	id := 0
	for _, spending := range spendingRates {
		for _, alloc := range allocations {
			job := SweepJob{
				ID:           id,
				TargetEquity: alloc,
				SpendingRate: spending,
				Params:       params,
				Rebalance:    rebalance,
			}
			if err := pool.SubmitJob(job); err != nil {
				pool.Stop()
				return nil, err
			}
			id++
		}
	}

	cells := make([]Cell, 0, jobCount)
	var firstErr error
	for i := 0; i < jobCount; i++ {
		result := <-pool.Results()
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("cell (equity %.0f%%, spending %.1f%%): %w",
				result.Job.TargetEquity*100, result.Job.SpendingRate*100, result.Error)
		}
		if onCellDone != nil {
			onCellDone()
		}
		cells = append(cells, Cell{
			TargetEquity: result.Job.TargetEquity,
			SpendingRate: result.Job.SpendingRate,
			Report:       result.Report,
		})
	}
	pool.Stop()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].SpendingRate != cells[j].SpendingRate {
			return cells[i].SpendingRate < cells[j].SpendingRate
		}
		return cells[i].TargetEquity < cells[j].TargetEquity
	})

	return &Surface{
		HorizonYears:  dataset.HorizonYears(),
		Episodes:      dataset.Count(),
		Rebalance:     rebalance,
		Cells:         cells,
		Allocations:   allocations,
		SpendingRates: spendingRates,
	}, nil
}

// MaxSafeSpendingRate returns the highest spending rate on the surface whose
// shortfall probability stays within tolerance for the given allocation, or
// NaN when even the lowest rate breaches it.
func (s *Surface) MaxSafeSpendingRate(targetEquity, tolerance float64) float64 {
	best := math.NaN()
	for _, cell := range s.Cells {
		if cell.TargetEquity != targetEquity {
			continue
		}
		if cell.Report.ProbabilityOfShortfall <= tolerance {
			if math.IsNaN(best) || cell.SpendingRate > best {
				best = cell.SpendingRate
			}
		}
	}
	return best
}

// ShortfallRow returns the shortfall probabilities across allocations for
// one spending rate, in ascending allocation order.
func (s *Surface) ShortfallRow(spendingRate float64) []float64 {
	row := make([]float64, 0, len(s.Allocations))
	for _, cell := range s.Cells {
		if cell.SpendingRate == spendingRate {
			row = append(row, cell.Report.ProbabilityOfShortfall)
		}
	}
	return row
}
