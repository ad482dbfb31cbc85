package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements output path management.
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager.
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the default output directory for a run, e.g.
// results/rebalance-60pct_30y.
func (p *DefaultPathManager) GetDefaultOutputDir(policyName string, horizonYears int) string {
	slug := strings.ToLower(strings.TrimSpace(policyName))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "%", "pct")
	if slug == "" {
		slug = "run"
	}
	return filepath.Join("results", fmt.Sprintf("%s_%dy", slug, horizonYears))
}

// EnsureDirectoryExists creates the given directory, and any parents, if
// needed.
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	return os.MkdirAll(path, 0755)
}

// DefaultOutputDir is a package-level convenience wrapper.
func DefaultOutputDir(policyName string, horizonYears int) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultOutputDir(policyName, horizonYears)
}
