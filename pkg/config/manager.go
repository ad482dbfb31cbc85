package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager loads, validates and saves run configurations. Files may be JSON
// or YAML, selected by extension.
type Manager struct {
	validator *Validator
}

// NewManager creates a configuration manager.
func NewManager() *Manager {
	return &Manager{validator: NewValidator()}
}

// LoadSimulation loads a single-run configuration, overlaying file contents
// on the defaults, and validates the result.
func (m *Manager) LoadSimulation(configFile string) (*SimulationConfig, error) {
	cfg := NewDefaultSimulationConfig()
	if configFile != "" {
		if err := decodeFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := m.validator.ValidateSimulation(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadSweep loads a grid-sweep configuration the same way.
func (m *Manager) LoadSweep(configFile string) (*SweepConfig, error) {
	cfg := NewDefaultSweepConfig()
	if configFile != "" {
		if err := decodeFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := m.validator.ValidateSweep(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration back out, JSON or YAML by extension.
func (m *Manager) Save(cfg interface{}, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	var (
		encoded []byte
		err     error
	)
	if isYAML(path) {
		encoded, err = yaml.Marshal(cfg)
	} else {
		encoded, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return os.WriteFile(path, encoded, 0644)
}

func decodeFile(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("could not parse YAML config: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("could not parse JSON config: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
