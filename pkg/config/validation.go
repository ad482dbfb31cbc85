package config

import (
	"fmt"
	"math"
)

// Validator checks run configurations before any simulation starts.
type Validator struct{}

// NewValidator creates a configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSimulation performs validation on a single-run configuration.
func (v *Validator) ValidateSimulation(cfg *SimulationConfig) error {
	if cfg.HorizonYears <= 0 || cfg.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("horizon must be between 1 and %d years, got: %d", MaxHorizonYears, cfg.HorizonYears)
	}
	if cfg.InitialWealth <= 0 {
		return fmt.Errorf("initial wealth must be positive, got: %.4f", cfg.InitialWealth)
	}
	if cfg.SpendingRate < MinSpendingRate || cfg.SpendingRate > MaxSpendingRate {
		return fmt.Errorf("spending rate must be between %.2f and %.2f, got: %.4f",
			MinSpendingRate, MaxSpendingRate, cfg.SpendingRate)
	}
	if err := validateGridFraction("target equity", cfg.TargetEquity); err != nil {
		return err
	}
	if cfg.TrailingMonths < 0 {
		return fmt.Errorf("trailing months must be non-negative, got: %d", cfg.TrailingMonths)
	}
	return nil
}

// ValidateSweep performs validation on a grid-sweep configuration.
func (v *Validator) ValidateSweep(cfg *SweepConfig) error {
	if err := v.ValidateSimulation(&cfg.Simulation); err != nil {
		return err
	}
	g := cfg.Grid
	if g.AllocationStep <= 0 || g.AllocationMax < g.AllocationMin {
		return fmt.Errorf("invalid allocation axis: min %.3f max %.3f step %.3f",
			g.AllocationMin, g.AllocationMax, g.AllocationStep)
	}
	if g.AllocationMin < 0 || g.AllocationMax > 1 {
		return fmt.Errorf("allocation axis must stay within [0,1], got [%.3f, %.3f]",
			g.AllocationMin, g.AllocationMax)
	}
	if g.SpendingStep <= 0 || g.SpendingMax < g.SpendingMin {
		return fmt.Errorf("invalid spending axis: min %.4f max %.4f step %.4f",
			g.SpendingMin, g.SpendingMax, g.SpendingStep)
	}
	if g.SpendingMin < MinSpendingRate || g.SpendingMax > MaxSpendingRate {
		return fmt.Errorf("spending axis must stay within [%.2f, %.2f], got [%.4f, %.4f]",
			MinSpendingRate, MaxSpendingRate, g.SpendingMin, g.SpendingMax)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got: %d", cfg.Workers)
	}
	return nil
}

// validateGridFraction checks a fraction sits on a 5% allocation grid step
// within [0, 1].
func validateGridFraction(name string, fraction float64) error {
	if fraction < 0 || fraction > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got: %.4f", name, fraction)
	}
	steps := fraction / 0.05
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%s must be a 5%% step, got: %.4f", name, fraction)
	}
	return nil
}
