package main

import (
	"flag"
	"fmt"
	"runtime"
)

// SweepFlags holds all command line flags for the grid sweep command.
type SweepFlags struct {
	ConfigFile *string
	DataFile   *string
	EnvFile    *string

	HorizonYears  *int
	InitialWealth *float64
	Rebalance     *bool
	Trailing      *int

	AllocationMin *float64
	AllocationMax *float64
	SpendingMin   *float64
	SpendingMax   *float64

	Workers     *int
	OutputDir   *string
	ConsoleOnly *bool
	Quiet       *bool

	ShowVersion *bool
	ShowHelp    *bool
}

// NewSweepFlags registers all flags and returns the holder.
func NewSweepFlags() *SweepFlags {
	return &SweepFlags{
		ConfigFile: flag.String("config", "", "Config file (JSON or YAML)"),
		DataFile:   flag.String("data", "", "Monthly market series CSV file"),
		EnvFile:    flag.String("env-file", "", "Environment file to load (default .env)"),

		HorizonYears:  flag.Int("horizon", 30, "Retirement horizon in years"),
		InitialWealth: flag.Float64("wealth", 1.0, "Initial wealth (normalized)"),
		Rebalance:     flag.Bool("rebalance", true, "Rebalance annually (false = buy and hold)"),
		Trailing:      flag.Int("trailing", 12, "Trailing months of returns in observations"),

		AllocationMin: flag.Float64("alloc-min", 0.0, "Lowest equity fraction in the grid"),
		AllocationMax: flag.Float64("alloc-max", 1.0, "Highest equity fraction in the grid"),
		SpendingMin:   flag.Float64("spend-min", 0.03, "Lowest annual spending rate in the grid"),
		SpendingMax:   flag.Float64("spend-max", 0.05, "Highest annual spending rate in the grid"),

		Workers:     flag.Int("workers", runtime.NumCPU(), "Parallel sweep workers"),
		OutputDir:   flag.String("output", "", "Output directory (default results/sweep_<horizon>y)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only, no files"),
		Quiet:       flag.Bool("quiet", false, "Suppress progress and banner output, errors only"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show usage help"),
	}
}

// Validate checks flag combinations before any work starts.
func (f *SweepFlags) Validate() error {
	if *f.ConfigFile == "" && *f.DataFile == "" {
		return fmt.Errorf("either -config or -data is required")
	}
	if *f.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *f.Workers)
	}
	return nil
}

// PrintUsageExamples prints common invocations.
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  grid-sweep -data data/shiller_monthly.csv")
	fmt.Println("  grid-sweep -data data/shiller_monthly.csv -spend-min 0.035 -spend-max 0.045")
	fmt.Println("  grid-sweep -config configs/sweep_30y.yaml -workers 8")
	fmt.Println()
}
