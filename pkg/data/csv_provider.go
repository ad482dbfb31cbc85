package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hoangnd25/glidepath/pkg/types"
)

// CSVProvider loads a monthly market series from a CSV file with columns
// month, stock_return, bond_return, inflation_rate. Returns are decimal
// fractions. The month column is either an integer index or a YYYY-MM date.
type CSVProvider struct{}

// NewCSVProvider creates a new CSV series provider.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{}
}

// GetName returns the name of the provider.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadSeries reads and validates the full series from the file.
func (p *CSVProvider) LoadSeries(source string) (types.MarketSeries, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("could not open series file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}

	var series types.MarketSeries
	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) < 4 {
			return nil, fmt.Errorf("insufficient columns at line %d (expected 4, got %d)", lineNum, len(record))
		}

		monthIndex, err := parseMonth(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid month %q at line %d: %w", record[0], lineNum, err)
		}
		stockReturn, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stock return %q at line %d: %w", record[1], lineNum, err)
		}
		bondReturn, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bond return %q at line %d: %w", record[2], lineNum, err)
		}
		inflation, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid inflation rate %q at line %d: %w", record[3], lineNum, err)
		}

		series = append(series, types.MonthlyRecord{
			MonthIndex:    monthIndex,
			StockReturn:   stockReturn,
			BondReturn:    bondReturn,
			InflationRate: inflation,
		})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series failed validation: %w", err)
	}
	return series, nil
}

// parseMonth accepts either a plain integer month index or a YYYY-MM date,
// which maps to year*12 + (month-1) so consecutive calendar months stay
// gap-free.
func parseMonth(field string) (int, error) {
	field = strings.TrimSpace(field)
	if idx, err := strconv.Atoi(field); err == nil {
		return idx, nil
	}
	t, err := time.Parse("2006-01", field)
	if err != nil {
		return 0, fmt.Errorf("not an index or YYYY-MM date")
	}
	return t.Year()*12 + int(t.Month()) - 1, nil
}
