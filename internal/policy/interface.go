package policy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAction is returned when an action is outside the discrete
// allocation grid. Invalid actions are a caller contract violation and are
// never silently clamped.
var ErrInvalidAction = errors.New("invalid allocation action")

// ActionLevels is the number of discrete equity allocation levels
// (0%, 5%, ..., 100%).
const ActionLevels = 21

// Action is a discrete equity allocation level, an index into the 5%-step
// grid from 0% to 100%.
type Action int

// Fraction returns the equity fraction the action encodes.
func (a Action) Fraction() float64 {
	return float64(a) * 0.05
}

func (a Action) String() string {
	return fmt.Sprintf("%d%%", int(a)*5)
}

// Valid reports whether the action is one of the 21 grid levels.
func (a Action) Valid() bool {
	return a >= 0 && a < ActionLevels
}

// ActionFromFraction maps an equity fraction onto the action grid. The
// fraction must sit on a 5% step within [0, 1].
func ActionFromFraction(fraction float64) (Action, error) {
	if fraction < 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: fraction %.4f outside [0,1]", ErrInvalidAction, fraction)
	}
	steps := fraction / 0.05
	nearest := math.Round(steps)
	if math.Abs(steps-nearest) > 1e-9 {
		return 0, fmt.Errorf("%w: fraction %.4f is not a 5%% step", ErrInvalidAction, fraction)
	}
	return Action(int(nearest)), nil
}

// Cadence controls how often the engine consults a policy for a new
// allocation.
type Cadence int

const (
	// CadenceOnReset decides once at episode start and never again; the
	// realized allocation then drifts with relative performance.
	CadenceOnReset Cadence = iota
	// CadenceAnnual decides at every year boundary.
	CadenceAnnual
	// CadenceMonthly decides at every step.
	CadenceMonthly
)

func (c Cadence) String() string {
	switch c {
	case CadenceOnReset:
		return "on-reset"
	case CadenceAnnual:
		return "annual"
	case CadenceMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// Observation is the state snapshot the engine hands to a policy (and to an
// external trainer) at each decision point. Trailing returns cover the last
// k months inside the episode window, zero-padded before the episode start.
type Observation struct {
	YearsRemaining       float64   `json:"years_remaining"`
	Wealth               float64   `json:"wealth"`
	EquityFraction       float64   `json:"equity_fraction"`
	SpendingRequirement  float64   `json:"spending_requirement"`
	TrailingStockReturns []float64 `json:"trailing_stock_returns"`
	TrailingBondReturns  []float64 `json:"trailing_bond_returns"`
}

// Policy decides the equity allocation at each decision point.
type Policy interface {
	// Decide returns the allocation to apply from the next step on.
	Decide(obs Observation) (Action, error)

	// Cadence returns how often the engine should call Decide.
	Cadence() Cadence

	// Name returns a short policy label for reports.
	Name() string
}
