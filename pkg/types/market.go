package types

import "fmt"

// MonthlyRecord is one month of historical market data. Returns and
// inflation are decimal fractions (0.01 == 1%).
type MonthlyRecord struct {
	MonthIndex    int
	StockReturn   float64
	BondReturn    float64
	InflationRate float64
}

// MarketSeries is the full ordered history of monthly records. It is built
// once at load time and shared read-only by every episode; callers must not
// mutate it after Validate has passed.
type MarketSeries []MonthlyRecord

// Len returns the number of months in the series.
func (s MarketSeries) Len() int {
	return len(s)
}

// Validate checks the series invariants: non-empty, strictly increasing
// month indexes with no gaps.
func (s MarketSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("market series is empty")
	}
	for i := 1; i < len(s); i++ {
		if s[i].MonthIndex != s[i-1].MonthIndex+1 {
			return fmt.Errorf("month index gap at position %d: %d followed by %d",
				i, s[i-1].MonthIndex, s[i].MonthIndex)
		}
	}
	return nil
}
