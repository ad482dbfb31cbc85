package reporting

// Package reporting provides output generation for evaluation results.

import (
	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// ConsoleReporter defines interface for console output.
type ConsoleReporter interface {
	OutputReport(report *evaluation.RiskReport)
	OutputSurfaceSummary(surface *evaluation.Surface)
}

// FileReporter defines interface for file output.
type FileReporter interface {
	WriteSurfaceCSV(surface *evaluation.Surface, path string) error
	WriteSurfaceXLSX(surface *evaluation.Surface, path string) error
	WriteOutcomesCSV(outcomes []*sim.Outcome, horizonYears int, path string) error
	WriteReportJSON(report *evaluation.RiskReport, path string) error
	WriteSurfaceJSON(surface *evaluation.Surface, path string) error
}

// PathManager defines interface for output path management.
type PathManager interface {
	GetDefaultOutputDir(policyName string, horizonYears int) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces.
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles.
type ExcelStyles struct {
	HeaderStyle  int
	PercentStyle int
	NumberStyle  int
	BaseStyle    int
	RiskStyle    int
	SafeStyle    int
}
