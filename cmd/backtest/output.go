package main

import (
	"path/filepath"

	"github.com/hoangnd25/glidepath/cmd/common"
	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/sim"
	"github.com/hoangnd25/glidepath/pkg/config"
	"github.com/hoangnd25/glidepath/pkg/reporting"
)

// outputResults prints the risk report and, unless console-only mode is
// requested, writes the per-episode CSV and report JSON next to it.
func outputResults(logger *common.Logger, cfg *config.SimulationConfig, report *evaluation.RiskReport, outcomes []*sim.Outcome, consoleOnly bool) {
	reporter := reporting.NewDefaultReporter()
	reporter.OutputReport(report)

	if consoleOnly {
		return
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = reporting.DefaultOutputDir(report.PolicyName, cfg.HorizonYears)
	}
	if err := reporter.EnsureDirectoryExists(outputDir); err != nil {
		fatal(logger, "Output directory error: %v", err)
	}

	logger.Section("Saved Artifacts")

	outcomesPath := filepath.Join(outputDir, "episodes.csv")
	if err := reporter.WriteOutcomesCSV(outcomes, cfg.HorizonYears, outcomesPath); err != nil {
		fatal(logger, "Episode CSV error: %v", err)
	}
	logger.Info("Episode outcomes: %s", outcomesPath)

	reportPath := filepath.Join(outputDir, "report.json")
	if err := reporter.WriteReportJSON(report, reportPath); err != nil {
		fatal(logger, "Report JSON error: %v", err)
	}
	logger.Info("Risk report: %s", reportPath)
}
