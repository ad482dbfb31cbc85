package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestManager_LoadSimulation_Defaults tests that an empty path yields the
// standard 30-year 4%-rule setup
func TestManager_LoadSimulation_Defaults(t *testing.T) {
	cfg, err := NewManager().LoadSimulation("")
	require.NoError(t, err)

	assert.Equal(t, DefaultHorizonYears, cfg.HorizonYears)
	assert.Equal(t, DefaultSpendingRate, cfg.SpendingRate)
	assert.Equal(t, DefaultTargetEquity, cfg.TargetEquity)
	assert.True(t, cfg.Rebalance)
}

// TestManager_LoadSimulation_JSON tests a JSON file overlaying the defaults
func TestManager_LoadSimulation_JSON(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"data_file": "data/shiller.csv",
		"horizon_years": 25,
		"spending_rate": 0.035
	}`)

	cfg, err := NewManager().LoadSimulation(path)
	require.NoError(t, err)

	assert.Equal(t, "data/shiller.csv", cfg.DataFile)
	assert.Equal(t, 25, cfg.HorizonYears)
	assert.Equal(t, 0.035, cfg.SpendingRate)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultTargetEquity, cfg.TargetEquity)
	assert.Equal(t, DefaultTrailingMonths, cfg.TrailingMonths)
}

// TestManager_LoadSweep_YAML tests a YAML sweep file
func TestManager_LoadSweep_YAML(t *testing.T) {
	path := writeConfig(t, "sweep.yaml", `
simulation:
  data_file: data/shiller.csv
  horizon_years: 30
grid:
  allocation_min: 0.2
  allocation_max: 0.8
  allocation_step: 0.1
  spending_min: 0.035
  spending_max: 0.045
  spending_step: 0.005
workers: 4
`)

	cfg, err := NewManager().LoadSweep(path)
	require.NoError(t, err)

	assert.Equal(t, "data/shiller.csv", cfg.Simulation.DataFile)
	assert.Equal(t, 0.2, cfg.Grid.AllocationMin)
	assert.Equal(t, 0.8, cfg.Grid.AllocationMax)
	assert.Equal(t, 4, cfg.Workers)
}

// TestManager_LoadSimulation_InvalidValues tests that validation runs after
// the overlay
func TestManager_LoadSimulation_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"horizon too long":  `{"horizon_years": 61}`,
		"spending too high": `{"spending_rate": 0.5}`,
		"off-grid equity":   `{"target_equity": 0.63}`,
		"negative wealth":   `{"initial_wealth": -1}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, "bad.json", content)
			_, err := NewManager().LoadSimulation(path)
			assert.Error(t, err)
		})
	}
}

// TestManager_Save_RoundTrip tests saving and reloading both formats
func TestManager_Save_RoundTrip(t *testing.T) {
	manager := NewManager()
	cfg := NewDefaultSimulationConfig()
	cfg.DataFile = "data/shiller.csv"
	cfg.HorizonYears = 20

	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, manager.Save(cfg, path))

		loaded, err := manager.LoadSimulation(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	}
}

// TestValidateSweep tests the sweep-specific axis bounds
func TestValidateSweep(t *testing.T) {
	validator := NewValidator()

	cfg := NewDefaultSweepConfig()
	assert.NoError(t, validator.ValidateSweep(cfg))

	cfg = NewDefaultSweepConfig()
	cfg.Grid.AllocationMax = 1.2
	assert.Error(t, validator.ValidateSweep(cfg))

	cfg = NewDefaultSweepConfig()
	cfg.Grid.SpendingStep = 0
	assert.Error(t, validator.ValidateSweep(cfg))

	cfg = NewDefaultSweepConfig()
	cfg.Grid.SpendingMax = MaxSpendingRate + 0.01
	assert.Error(t, validator.ValidateSweep(cfg))

	cfg = NewDefaultSweepConfig()
	cfg.Workers = -1
	assert.Error(t, validator.ValidateSweep(cfg))
}
