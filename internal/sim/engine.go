package sim

import (
	"fmt"
	"math"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/policy"
)

// Status is the simulation state machine state.
type Status int

const (
	StatusActive Status = iota
	// StatusDepleted is terminal and absorbing: wealth hit zero before the
	// horizon ended.
	StatusDepleted
	// StatusCompleted is terminal: the horizon ended while still solvent.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusDepleted:
		return "DEPLETED"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

const (
	// DepletionPenaltyScale multiplies the squared unfunded years on
	// depletion. Running out early in retirement is catastrophically worse
	// than running out in the final year.
	DepletionPenaltyScale = 100.0

	// CompletionReward is the fixed terminal bonus when the horizon ends
	// solvent (years remaining is zero, so the coverage ratio is undefined).
	CompletionReward = 10.0

	// DefaultTrailingMonths is the trailing-returns window in observations.
	DefaultTrailingMonths = 12
)

// Params configures one simulation run. The annual spending target is fixed
// at episode start as SpendingRate * InitialWealth and only its inflation
// adjustment varies over the horizon.
type Params struct {
	InitialWealth  float64
	SpendingRate   float64
	TrailingMonths int
}

// Validate checks the parameters before any simulation starts.
func (p Params) Validate() error {
	if p.InitialWealth <= 0 {
		return fmt.Errorf("initial wealth must be positive, got: %.4f", p.InitialWealth)
	}
	if p.SpendingRate < 0 {
		return fmt.Errorf("spending rate must be non-negative, got: %.4f", p.SpendingRate)
	}
	if p.TrailingMonths < 0 {
		return fmt.Errorf("trailing months must be non-negative, got: %d", p.TrailingMonths)
	}
	return nil
}

// Info carries per-step diagnostics alongside the observation and reward.
type Info map[string]interface{}

// StepResult is what one environment step returns.
type StepResult struct {
	Observation policy.Observation
	Reward      float64
	Terminated  bool
	Info        Info
}

// Outcome is the terminal record of one episode run.
type Outcome struct {
	EpisodeID            int             `json:"episode_id"`
	StartMonth           int             `json:"start_month"`
	Depleted             bool            `json:"depleted"`
	MonthsUntilDepletion int             `json:"months_until_depletion,omitempty"`
	FinalWealth          float64         `json:"final_wealth"`
	AllocationPath       []policy.Action `json:"allocation_path"`
}

// Engine advances one episode's wealth/allocation state month by month under
// an allocation policy and an inflation-adjusted withdrawal rule. One Step
// call advances one month. The engine performs no learning; it is the
// environment an external trainer drives through Reset/Step.
type Engine struct {
	params       Params
	horizonYears int

	ep  *episode.Episode
	pol policy.Policy

	status         Status
	wealth         float64
	equityFraction float64
	monthsElapsed  int
	annualSpending float64
	cumInflation   float64
	lastWithdrawal float64
	lastAction     policy.Action
	allocationPath []policy.Action
}

// NewEngine creates an engine for the given horizon and run parameters.
func NewEngine(horizonYears int, params Params) (*Engine, error) {
	if horizonYears <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got: %d", horizonYears)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.TrailingMonths == 0 {
		params.TrailingMonths = DefaultTrailingMonths
	}
	return &Engine{params: params, horizonYears: horizonYears}, nil
}

// Reset starts a fresh run of the given episode under the given policy and
// returns the initial observation. The policy is consulted once here for the
// starting allocation regardless of its cadence.
func (e *Engine) Reset(ep *episode.Episode, pol policy.Policy) (policy.Observation, error) {
	if ep.Months() != e.horizonYears*12 {
		return policy.Observation{}, fmt.Errorf("episode window is %d months, engine horizon needs %d",
			ep.Months(), e.horizonYears*12)
	}

	e.ep = ep
	e.pol = pol
	e.status = StatusActive
	e.wealth = e.params.InitialWealth
	e.monthsElapsed = 0
	e.annualSpending = e.params.SpendingRate * e.params.InitialWealth
	e.cumInflation = 1.0
	e.lastWithdrawal = 0
	e.allocationPath = e.allocationPath[:0]

	action, err := pol.Decide(e.observation())
	if err != nil {
		return policy.Observation{}, fmt.Errorf("policy %s failed at reset: %w", pol.Name(), err)
	}
	if !action.Valid() {
		return policy.Observation{}, fmt.Errorf("%w: %d at reset", policy.ErrInvalidAction, int(action))
	}
	e.lastAction = action
	e.equityFraction = action.Fraction()
	e.allocationPath = append(e.allocationPath, action)

	return e.observation(), nil
}

// Status returns the current state machine state.
func (e *Engine) Status() Status {
	return e.status
}

// Wealth returns the current wealth.
func (e *Engine) Wealth() float64 {
	return e.wealth
}

// MonthsElapsed returns how many months have been simulated.
func (e *Engine) MonthsElapsed() int {
	return e.monthsElapsed
}

// StepAction supplies an action for an externally driven policy and advances
// one month. This is the step(action) half of the environment contract.
func (e *Engine) StepAction(action policy.Action) (StepResult, error) {
	if !action.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", policy.ErrInvalidAction, int(action))
	}
	ext, ok := e.pol.(*policy.External)
	if !ok {
		return StepResult{}, fmt.Errorf("engine is not driven by an external policy (have %s)", e.pol.Name())
	}
	ext.Supply(action)
	return e.Step()
}

// Step advances the simulation one month under the attached policy.
//
// Order inside a step: portfolio growth with the pre-decision allocation
// (and the drift it causes), then the year-boundary withdrawal, then the
// depletion check, then the completion check, then the next decision. The
// depletion check deliberately precedes the completion check so an
// over-sized final withdrawal still counts as depletion.
func (e *Engine) Step() (StepResult, error) {
	if e.status != StatusActive {
		return StepResult{}, fmt.Errorf("step on terminated episode (status %s)", e.status)
	}

	rec := e.ep.Window()[e.monthsElapsed]
	eq := e.equityFraction
	growth := 1 + eq*rec.StockReturn + (1-eq)*rec.BondReturn
	e.wealth *= growth
	if growth > 0 {
		// without rebalancing the equity share drifts with relative
		// performance; a later decision overwrites this
		e.equityFraction = eq * (1 + rec.StockReturn) / growth
	}
	e.cumInflation *= 1 + rec.InflationRate
	e.monthsElapsed++

	e.lastWithdrawal = 0
	if e.monthsElapsed%12 == 0 {
		e.lastWithdrawal = e.annualSpending * e.cumInflation
		e.wealth -= e.lastWithdrawal
	}

	res := StepResult{}
	yearsRemaining := float64(e.horizonYears) - float64(e.monthsElapsed)/12

	switch {
	case e.wealth <= 0:
		e.wealth = 0
		e.status = StatusDepleted
		res.Reward = -(yearsRemaining * yearsRemaining) * DepletionPenaltyScale
		res.Terminated = true

	case e.monthsElapsed == e.horizonYears*12:
		e.status = StatusCompleted
		res.Reward = CompletionReward
		res.Terminated = true

	default:
		if e.annualSpending > 0 {
			res.Reward = math.Sqrt(e.wealth / (e.annualSpending * yearsRemaining))
		} else {
			res.Reward = CompletionReward
		}
		if e.decisionDue() {
			action, err := e.pol.Decide(e.observation())
			if err != nil {
				return StepResult{}, fmt.Errorf("policy %s failed at month %d: %w", e.pol.Name(), e.monthsElapsed, err)
			}
			if !action.Valid() {
				return StepResult{}, fmt.Errorf("%w: %d at month %d", policy.ErrInvalidAction, int(action), e.monthsElapsed)
			}
			e.lastAction = action
			e.equityFraction = action.Fraction()
		}
		if e.monthsElapsed%12 == 0 {
			e.allocationPath = append(e.allocationPath, e.lastAction)
		}
	}

	res.Observation = e.observation()
	res.Info = Info{
		"episode_id":     e.ep.ID,
		"months_elapsed": e.monthsElapsed,
		"wealth":         e.wealth,
		"withdrawal":     e.lastWithdrawal,
		"status":         e.status.String(),
	}
	return res, nil
}

// decisionDue reports whether the attached policy should be consulted after
// the month that just ended.
func (e *Engine) decisionDue() bool {
	switch e.pol.Cadence() {
	case policy.CadenceMonthly:
		return true
	case policy.CadenceAnnual:
		return e.monthsElapsed%12 == 0
	default:
		return false
	}
}

// Run drives the episode to termination and returns its outcome.
func (e *Engine) Run(ep *episode.Episode, pol policy.Policy) (*Outcome, error) {
	if _, err := e.Reset(ep, pol); err != nil {
		return nil, err
	}
	for e.status == StatusActive {
		if _, err := e.Step(); err != nil {
			return nil, err
		}
	}
	return e.Outcome(), nil
}

// Outcome returns the terminal record of the current run. Only meaningful
// after the run has terminated.
func (e *Engine) Outcome() *Outcome {
	out := &Outcome{
		EpisodeID:      e.ep.ID,
		StartMonth:     e.ep.StartMonth,
		Depleted:       e.status == StatusDepleted,
		FinalWealth:    e.wealth,
		AllocationPath: append([]policy.Action(nil), e.allocationPath...),
	}
	if out.Depleted {
		out.MonthsUntilDepletion = e.monthsElapsed
	}
	return out
}

// observation snapshots the state the policy (or an external trainer) sees.
// Trailing returns never reach outside the episode window: months before the
// episode start are zero-padded.
func (e *Engine) observation() policy.Observation {
	k := e.params.TrailingMonths
	stocks := make([]float64, k)
	bonds := make([]float64, k)
	window := e.ep.Window()
	for i := 0; i < k; i++ {
		idx := e.monthsElapsed - k + i
		if idx >= 0 {
			stocks[i] = window[idx].StockReturn
			bonds[i] = window[idx].BondReturn
		}
	}
	return policy.Observation{
		YearsRemaining:       float64(e.horizonYears) - float64(e.monthsElapsed)/12,
		Wealth:               e.wealth,
		EquityFraction:       e.equityFraction,
		SpendingRequirement:  e.annualSpending,
		TrailingStockReturns: stocks,
		TrailingBondReturns:  bonds,
	}
}
