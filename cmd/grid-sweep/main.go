package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hoangnd25/glidepath/cmd/common"
	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/sim"
	"github.com/hoangnd25/glidepath/pkg/config"
	"github.com/hoangnd25/glidepath/pkg/data"
	"github.com/hoangnd25/glidepath/pkg/reporting"
)

const (
	AppName = "Grid Sweep"

	// SafeShortfallTolerance is the shortfall probability below which a
	// spending rate counts as safe in the summary output.
	SafeShortfallTolerance = 0.05
)

func main() {
	flags := NewSweepFlags()
	flag.Parse()

	if *flags.ShowVersion {
		common.PrintVersion()
		return
	}
	if *flags.ShowHelp {
		fmt.Printf("%s - allocation x spending-rate shortfall surface\n\n", AppName)
		PrintUsageExamples()
		flag.PrintDefaults()
		return
	}

	logger := common.NewLogger()
	logger.SetSilentMode(*flags.Quiet)
	if err := flags.Validate(); err != nil {
		fatal(logger, "Flag validation error: %v", err)
	}

	logger.Header(fmt.Sprintf("%s v%s", AppName, common.ProjectVersion))
	common.LoadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		fatal(logger, "Configuration error: %v", err)
	}

	provider := data.NewCachedProvider(data.NewCSVProvider())
	series, err := provider.LoadSeries(cfg.Simulation.DataFile)
	if err != nil {
		fatal(logger, "Data error: %v", err)
	}

	dataset, err := episode.NewDataset(series, cfg.Simulation.HorizonYears)
	if err != nil {
		fatal(logger, "Dataset error: %v", err)
	}

	grid := evaluation.GridSpec{
		AllocationMin:  cfg.Grid.AllocationMin,
		AllocationMax:  cfg.Grid.AllocationMax,
		AllocationStep: cfg.Grid.AllocationStep,
		SpendingMin:    cfg.Grid.SpendingMin,
		SpendingMax:    cfg.Grid.SpendingMax,
		SpendingStep:   cfg.Grid.SpendingStep,
	}
	totalCells := len(grid.Allocations()) * len(grid.SpendingRates())
	logger.Info("%d episodes x %d cells (%d allocations x %d spending rates), %d workers",
		dataset.Count(), totalCells, len(grid.Allocations()), len(grid.SpendingRates()), cfg.Workers)

	params := sim.Params{
		InitialWealth:  cfg.Simulation.InitialWealth,
		SpendingRate:   cfg.Simulation.SpendingRate,
		TrailingMonths: cfg.Simulation.TrailingMonths,
	}

	tracker := evaluation.NewProgressTracker(totalCells)
	startTime := time.Now()
	surface, err := evaluation.Sweep(dataset, grid, params, cfg.Simulation.Rebalance, cfg.Workers, func() {
		tracker.Increment()
		done, total, pct, _ := tracker.Progress()
		if done%25 == 0 || done == total {
			logger.Progress("%d/%d cells (%.1f%%), ~%v remaining",
				done, total, pct, tracker.EstimateTimeRemaining().Round(time.Second))
		}
	})
	if err != nil {
		fatal(logger, "Sweep error: %v", err)
	}
	logger.Success("Sweep complete in %v", time.Since(startTime).Round(time.Millisecond))
	fmt.Println()

	outputResults(logger, cfg, surface, *flags.ConsoleOnly)
}

func fatal(logger *common.Logger, format string, args ...interface{}) {
	logger.Error(format, args...)
	os.Exit(1)
}

// loadConfiguration overlays explicitly set flags on the (file or default)
// sweep configuration.
func loadConfiguration(flags *SweepFlags) (*config.SweepConfig, error) {
	manager := config.NewManager()
	cfg, err := manager.LoadSweep(*flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Simulation.DataFile = *flags.DataFile
		case "horizon":
			cfg.Simulation.HorizonYears = *flags.HorizonYears
		case "wealth":
			cfg.Simulation.InitialWealth = *flags.InitialWealth
		case "rebalance":
			cfg.Simulation.Rebalance = *flags.Rebalance
		case "trailing":
			cfg.Simulation.TrailingMonths = *flags.Trailing
		case "alloc-min":
			cfg.Grid.AllocationMin = *flags.AllocationMin
		case "alloc-max":
			cfg.Grid.AllocationMax = *flags.AllocationMax
		case "spend-min":
			cfg.Grid.SpendingMin = *flags.SpendingMin
		case "spend-max":
			cfg.Grid.SpendingMax = *flags.SpendingMax
		case "workers":
			cfg.Workers = *flags.Workers
		case "output":
			cfg.Simulation.OutputDir = *flags.OutputDir
		}
	})

	if err := config.NewValidator().ValidateSweep(cfg); err != nil {
		return nil, err
	}
	if cfg.Simulation.DataFile == "" {
		return nil, fmt.Errorf("no data file configured")
	}
	if !common.FileExists(cfg.Simulation.DataFile) {
		return nil, fmt.Errorf("data file not found: %s", cfg.Simulation.DataFile)
	}
	return cfg, nil
}

// outputResults prints the surface summary and, unless console-only mode is
// requested, writes the surface CSV, XLSX and JSON artifacts.
func outputResults(logger *common.Logger, cfg *config.SweepConfig, surface *evaluation.Surface, consoleOnly bool) {
	reporter := reporting.NewDefaultReporter()
	reporter.OutputSurfaceSummary(surface)

	maxSafe := surface.MaxSafeSpendingRate(cfg.Simulation.TargetEquity, SafeShortfallTolerance)
	if math.IsNaN(maxSafe) {
		logger.Warn("No spending rate in the grid stays under %.0f%% shortfall at %.0f%% equity",
			SafeShortfallTolerance*100, cfg.Simulation.TargetEquity*100)
	} else {
		fmt.Printf("🛡️  Max safe spending at %.0f%% equity (< %.0f%% shortfall): %.2f%%\n",
			cfg.Simulation.TargetEquity*100, SafeShortfallTolerance*100, maxSafe*100)
	}

	if consoleOnly {
		return
	}

	outputDir := cfg.Simulation.OutputDir
	if outputDir == "" {
		outputDir = reporting.DefaultOutputDir("sweep", surface.HorizonYears)
	}
	if err := reporter.EnsureDirectoryExists(outputDir); err != nil {
		fatal(logger, "Output directory error: %v", err)
	}

	logger.Section("Saved Artifacts")

	csvPath := filepath.Join(outputDir, "surface.csv")
	if err := reporter.WriteSurfaceCSV(surface, csvPath); err != nil {
		fatal(logger, "Surface CSV error: %v", err)
	}
	logger.Info("Surface CSV: %s", csvPath)

	xlsxPath := filepath.Join(outputDir, "surface.xlsx")
	if err := reporter.WriteSurfaceXLSX(surface, xlsxPath); err != nil {
		fatal(logger, "Surface XLSX error: %v", err)
	}
	logger.Info("Surface XLSX: %s", xlsxPath)

	jsonPath := filepath.Join(outputDir, "surface.json")
	if err := reporter.WriteSurfaceJSON(surface, jsonPath); err != nil {
		fatal(logger, "Surface JSON error: %v", err)
	}
	logger.Info("Surface JSON: %s", jsonPath)
}
