package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hoangnd25/glidepath/internal/evaluation"
)

// DefaultJSONReporter implements JSON output functionality.
type DefaultJSONReporter struct{}

// NewDefaultJSONReporter creates a new JSON reporter.
func NewDefaultJSONReporter() *DefaultJSONReporter {
	return &DefaultJSONReporter{}
}

// WriteReportJSON dumps one evaluation's risk report.
func (r *DefaultJSONReporter) WriteReportJSON(report *evaluation.RiskReport, path string) error {
	return writeJSON(report, path)
}

// WriteSurfaceJSON dumps the full sweep surface including every cell report.
func (r *DefaultJSONReporter) WriteSurfaceJSON(surface *evaluation.Surface, path string) error {
	return writeJSON(surface, path)
}

func writeJSON(v interface{}, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode JSON: %w", err)
	}
	return os.WriteFile(path, encoded, 0644)
}
