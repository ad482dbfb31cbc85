package config

// Default parameter values and validation bounds for evaluation runs.
const (
	DefaultHorizonYears   = 30
	DefaultInitialWealth  = 1.0
	DefaultSpendingRate   = 0.04 // 4% rule
	DefaultTargetEquity   = 0.60
	DefaultTrailingMonths = 12

	MinSpendingRate = 0.0
	MaxSpendingRate = 0.20
	MaxHorizonYears = 60

	ResultsDir = "results"
)

// SimulationConfig holds everything a single-policy evaluation run needs.
type SimulationConfig struct {
	DataFile       string  `json:"data_file" yaml:"data_file"`
	HorizonYears   int     `json:"horizon_years" yaml:"horizon_years"`
	InitialWealth  float64 `json:"initial_wealth" yaml:"initial_wealth"`
	SpendingRate   float64 `json:"spending_rate" yaml:"spending_rate"`
	TargetEquity   float64 `json:"target_equity" yaml:"target_equity"`
	Rebalance      bool    `json:"rebalance" yaml:"rebalance"`
	TrailingMonths int     `json:"trailing_months" yaml:"trailing_months"`
	OutputDir      string  `json:"output_dir" yaml:"output_dir"`
}

// NewDefaultSimulationConfig returns the standard 30-year, 4%-rule setup.
func NewDefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		HorizonYears:   DefaultHorizonYears,
		InitialWealth:  DefaultInitialWealth,
		SpendingRate:   DefaultSpendingRate,
		TargetEquity:   DefaultTargetEquity,
		Rebalance:      true,
		TrailingMonths: DefaultTrailingMonths,
		OutputDir:      ResultsDir,
	}
}

// GridConfig is the sweep surface described in config files.
type GridConfig struct {
	AllocationMin  float64 `json:"allocation_min" yaml:"allocation_min"`
	AllocationMax  float64 `json:"allocation_max" yaml:"allocation_max"`
	AllocationStep float64 `json:"allocation_step" yaml:"allocation_step"`
	SpendingMin    float64 `json:"spending_min" yaml:"spending_min"`
	SpendingMax    float64 `json:"spending_max" yaml:"spending_max"`
	SpendingStep   float64 `json:"spending_step" yaml:"spending_step"`
}

// SweepConfig holds a full grid-sweep run: the base simulation setup plus
// the grid axes and worker count.
type SweepConfig struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Grid       GridConfig       `json:"grid" yaml:"grid"`
	Workers    int              `json:"workers" yaml:"workers"`
}

// NewDefaultSweepConfig returns the standard sweep: equity 0-100% in 5%
// steps, spending 3.0-5.0% in 0.1% steps.
func NewDefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Simulation: *NewDefaultSimulationConfig(),
		Grid: GridConfig{
			AllocationMin:  0.0,
			AllocationMax:  1.0,
			AllocationStep: 0.05,
			SpendingMin:    0.030,
			SpendingMax:    0.050,
			SpendingStep:   0.001,
		},
	}
}
