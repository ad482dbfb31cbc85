package data

import (
	"github.com/hoangnd25/glidepath/pkg/types"
)

// SeriesProvider loads a historical monthly market series from a source.
type SeriesProvider interface {
	// LoadSeries loads the ordered monthly series from the given source.
	LoadSeries(source string) (types.MarketSeries, error)

	// GetName returns the name of the provider.
	GetName() string
}

// SeriesCache caches loaded series keyed by source.
type SeriesCache interface {
	Get(key string) (types.MarketSeries, bool)
	Set(key string, series types.MarketSeries)
	Clear()
	Size() int
}

// SeriesFilter narrows or checks a loaded series.
type SeriesFilter interface {
	// FilterByMonthRange keeps months with index in [start, end].
	FilterByMonthRange(series types.MarketSeries, start, end int) types.MarketSeries

	// ValidateSequence ensures month indexes are strictly increasing with
	// no gaps.
	ValidateSequence(series types.MarketSeries) error
}
