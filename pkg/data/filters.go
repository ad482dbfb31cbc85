package data

import (
	"fmt"

	"github.com/hoangnd25/glidepath/pkg/types"
)

// DefaultSeriesFilter implements SeriesFilter for common operations.
type DefaultSeriesFilter struct{}

// NewDefaultSeriesFilter creates a new series filter.
func NewDefaultSeriesFilter() *DefaultSeriesFilter {
	return &DefaultSeriesFilter{}
}

// FilterByMonthRange keeps months with index in [start, end]. The result is
// a view into the original series.
func (f *DefaultSeriesFilter) FilterByMonthRange(series types.MarketSeries, start, end int) types.MarketSeries {
	if len(series) == 0 || end < start {
		return nil
	}
	lo := 0
	for lo < len(series) && series[lo].MonthIndex < start {
		lo++
	}
	hi := lo
	for hi < len(series) && series[hi].MonthIndex <= end {
		hi++
	}
	return series[lo:hi]
}

// ValidateSequence ensures month indexes are strictly increasing with no
// gaps.
func (f *DefaultSeriesFilter) ValidateSequence(series types.MarketSeries) error {
	for i := 1; i < len(series); i++ {
		if series[i].MonthIndex <= series[i-1].MonthIndex {
			return fmt.Errorf("month indexes not strictly increasing at position %d: %d after %d",
				i, series[i].MonthIndex, series[i-1].MonthIndex)
		}
		if series[i].MonthIndex != series[i-1].MonthIndex+1 {
			return fmt.Errorf("gap in month indexes at position %d: %d after %d",
				i, series[i].MonthIndex, series[i-1].MonthIndex)
		}
	}
	return nil
}
