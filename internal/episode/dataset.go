package episode

import (
	"errors"
	"fmt"

	"github.com/hoangnd25/glidepath/pkg/types"
)

// ErrInsufficientData is returned when the market series is shorter than a
// single retirement horizon.
var ErrInsufficientData = errors.New("market series shorter than one horizon")

// Episode is one contiguous T*12 month window of the market series,
// identified by the month index it starts at. Episodes share the underlying
// series and are immutable after dataset construction.
type Episode struct {
	ID         int
	StartMonth int
	window     types.MarketSeries
}

// Window returns the episode's months. The slice is a read-only view into
// the shared series; it covers exactly the episode's horizon and nothing
// after it.
func (e *Episode) Window() types.MarketSeries {
	return e.window
}

// Months returns the window length in months.
func (e *Episode) Months() int {
	return len(e.window)
}

// Dataset slices a market series into every overlapping fixed-horizon
// episode, rolling the start forward one month at a time.
type Dataset struct {
	series       types.MarketSeries
	horizonYears int
	episodes     []Episode
}

// NewDataset builds the full set of episodes for the given horizon. It fails
// with ErrInsufficientData when the series cannot hold even one episode.
func NewDataset(series types.MarketSeries, horizonYears int) (*Dataset, error) {
	if horizonYears <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got: %d", horizonYears)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid market series: %w", err)
	}

	months := horizonYears * 12
	if series.Len() < months {
		return nil, fmt.Errorf("%w: need %d months, have %d",
			ErrInsufficientData, months, series.Len())
	}

	count := series.Len() - months + 1
	episodes := make([]Episode, count)
	for i := 0; i < count; i++ {
		episodes[i] = Episode{
			ID:         i,
			StartMonth: series[i].MonthIndex,
			window:     series[i : i+months : i+months],
		}
	}

	return &Dataset{
		series:       series,
		horizonYears: horizonYears,
		episodes:     episodes,
	}, nil
}

// HorizonYears returns the episode horizon in years.
func (d *Dataset) HorizonYears() int {
	return d.horizonYears
}

// Count returns the number of episodes.
func (d *Dataset) Count() int {
	return len(d.episodes)
}

// Episode returns the episode with the given ID (its position in ascending
// start-month order).
func (d *Dataset) Episode(id int) (*Episode, error) {
	if id < 0 || id >= len(d.episodes) {
		return nil, fmt.Errorf("episode id out of range: %d (have %d episodes)", id, len(d.episodes))
	}
	return &d.episodes[id], nil
}

// Episodes returns all episodes in ascending start-month order. Re-iterating
// yields the same episodes in the same order.
func (d *Dataset) Episodes() []Episode {
	return d.episodes
}
