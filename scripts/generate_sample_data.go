package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hoangnd25/glidepath/cmd/common"
)

// Generates a synthetic monthly market series CSV in the format the
// evaluation commands consume: month, stock_return, bond_return,
// inflation_rate. The return moments roughly match long-run US monthly
// history so sample runs produce plausible shortfall surfaces.
//
// Usage:
//
//	go run scripts/generate_sample_data.go -months 1200 -output data/sample_monthly.csv

const (
	stockMeanMonthly  = 0.0066 // ~8.2% annualized
	stockStdevMonthly = 0.0440
	bondMeanMonthly   = 0.0037 // ~4.5% annualized
	bondStdevMonthly  = 0.0120
	inflationMean     = 0.0024 // ~2.9% annualized
	inflationStdev    = 0.0030
)

func main() {
	months := flag.Int("months", 1200, "Number of months to generate")
	output := flag.String("output", "data/sample_monthly.csv", "Output CSV path")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	if *months < 1 {
		log.Fatalf("months must be positive, got %d", *months)
	}

	if dir := filepath.Dir(*output); dir != "." && dir != "" {
		if err := common.EnsureDir(dir); err != nil {
			log.Fatalf("could not create output directory: %v", err)
		}
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("could not create output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"month", "stock_return", "bond_return", "inflation_rate"}); err != nil {
		log.Fatalf("could not write header: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *months; i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(stockMeanMonthly+rng.NormFloat64()*stockStdevMonthly, 'f', 6, 64),
			strconv.FormatFloat(bondMeanMonthly+rng.NormFloat64()*bondStdevMonthly, 'f', 6, 64),
			strconv.FormatFloat(inflationMean+rng.NormFloat64()*inflationStdev, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("could not write row %d: %v", i, err)
		}
	}

	fmt.Printf("✅ Wrote %d months to %s\n", *months, *output)
}
