package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hoangnd25/glidepath/cmd/common"
	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/evaluation"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
	"github.com/hoangnd25/glidepath/pkg/config"
	"github.com/hoangnd25/glidepath/pkg/data"
	"github.com/hoangnd25/glidepath/pkg/types"
)

const (
	AppName = "Retirement Backtest"
)

func main() {
	flags := NewBacktestFlags()
	flag.Parse()

	if *flags.ShowVersion {
		common.PrintVersion()
		return
	}
	if *flags.ShowHelp {
		fmt.Printf("%s - historical retirement withdrawal evaluation\n\n", AppName)
		PrintUsageExamples()
		flag.PrintDefaults()
		return
	}

	logger := common.NewLogger()
	if err := flags.Validate(); err != nil {
		fatal(logger, "Flag validation error: %v", err)
	}

	logger.Header(fmt.Sprintf("%s v%s", AppName, common.ProjectVersion))
	common.LoadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		fatal(logger, "Configuration error: %v", err)
	}

	series, err := loadSeries(cfg.DataFile)
	if err != nil {
		fatal(logger, "Data error: %v", err)
	}

	dataset, err := episode.NewDataset(series, cfg.HorizonYears)
	if err != nil {
		fatal(logger, "Dataset error: %v", err)
	}
	logger.Info("Series: %d months -> %d overlapping %d-year episodes",
		series.Len(), dataset.Count(), cfg.HorizonYears)

	pol, err := buildPolicy(cfg)
	if err != nil {
		fatal(logger, "Policy error: %v", err)
	}

	evaluator, err := evaluation.NewEvaluator(dataset, sim.Params{
		InitialWealth:  cfg.InitialWealth,
		SpendingRate:   cfg.SpendingRate,
		TrailingMonths: cfg.TrailingMonths,
	})
	if err != nil {
		fatal(logger, "Evaluator error: %v", err)
	}

	startTime := time.Now()
	report, outcomes, err := evaluator.Evaluate(pol)
	if err != nil {
		fatal(logger, "Evaluation error: %v", err)
	}
	logger.Success("Evaluated %d episodes in %v", len(outcomes), time.Since(startTime).Round(time.Millisecond))
	fmt.Println()

	outputResults(logger, cfg, report, outcomes, *flags.ConsoleOnly)
}

func fatal(logger *common.Logger, format string, args ...interface{}) {
	logger.Error(format, args...)
	os.Exit(1)
}

// loadConfiguration overlays explicitly set flags on the (file or default)
// configuration.
func loadConfiguration(flags *BacktestFlags) (*config.SimulationConfig, error) {
	manager := config.NewManager()
	cfg, err := manager.LoadSimulation(*flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataFile = *flags.DataFile
		case "horizon":
			cfg.HorizonYears = *flags.HorizonYears
		case "wealth":
			cfg.InitialWealth = *flags.InitialWealth
		case "spending":
			cfg.SpendingRate = *flags.SpendingRate
		case "equity":
			cfg.TargetEquity = *flags.TargetEquity
		case "rebalance":
			cfg.Rebalance = *flags.Rebalance
		case "trailing":
			cfg.TrailingMonths = *flags.Trailing
		case "output":
			cfg.OutputDir = *flags.OutputDir
		}
	})

	if err := config.NewValidator().ValidateSimulation(cfg); err != nil {
		return nil, err
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("no data file configured")
	}
	if !common.FileExists(cfg.DataFile) {
		return nil, fmt.Errorf("data file not found: %s", cfg.DataFile)
	}
	return cfg, nil
}

func loadSeries(path string) (types.MarketSeries, error) {
	provider := data.NewCachedProvider(data.NewCSVProvider())
	return provider.LoadSeries(path)
}

func buildPolicy(cfg *config.SimulationConfig) (policy.Policy, error) {
	if cfg.Rebalance {
		return policy.NewRebalance(cfg.TargetEquity)
	}
	return policy.NewBuyAndHold(cfg.TargetEquity)
}
