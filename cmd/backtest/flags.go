package main

import (
	"flag"
	"fmt"
)

// BacktestFlags holds all command line flags for the backtest command.
type BacktestFlags struct {
	// Configuration
	ConfigFile *string
	DataFile   *string
	EnvFile    *string

	// Run parameters
	HorizonYears  *int
	InitialWealth *float64
	SpendingRate  *float64
	TargetEquity  *float64
	Rebalance     *bool
	Trailing      *int

	// Output options
	OutputDir   *string
	ConsoleOnly *bool

	ShowVersion *bool
	ShowHelp    *bool
}

// NewBacktestFlags registers all flags and returns the holder.
func NewBacktestFlags() *BacktestFlags {
	return &BacktestFlags{
		ConfigFile: flag.String("config", "", "Config file (JSON or YAML)"),
		DataFile:   flag.String("data", "", "Monthly market series CSV file"),
		EnvFile:    flag.String("env-file", "", "Environment file to load (default .env)"),

		HorizonYears:  flag.Int("horizon", 30, "Retirement horizon in years"),
		InitialWealth: flag.Float64("wealth", 1.0, "Initial wealth (normalized)"),
		SpendingRate:  flag.Float64("spending", 0.04, "Annual spending rate as a fraction of initial wealth"),
		TargetEquity:  flag.Float64("equity", 0.60, "Target equity fraction (5% steps)"),
		Rebalance:     flag.Bool("rebalance", true, "Rebalance annually (false = buy and hold)"),
		Trailing:      flag.Int("trailing", 12, "Trailing months of returns in observations"),

		OutputDir:   flag.String("output", "", "Output directory (default results/<policy>_<horizon>y)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only, no files"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show usage help"),
	}
}

// Validate checks flag combinations before any work starts.
func (f *BacktestFlags) Validate() error {
	if *f.ConfigFile == "" && *f.DataFile == "" {
		return fmt.Errorf("either -config or -data is required")
	}
	return nil
}

// PrintUsageExamples prints common invocations.
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  backtest -data data/shiller_monthly.csv -equity 0.60 -spending 0.04")
	fmt.Println("  backtest -data data/shiller_monthly.csv -equity 1.00 -rebalance=false")
	fmt.Println("  backtest -config configs/retirement_30y.yaml")
	fmt.Println()
}
