package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnd25/glidepath/pkg/types"
)

func makeSeries(n int) types.MarketSeries {
	series := make(types.MarketSeries, n)
	for i := range series {
		series[i] = types.MonthlyRecord{
			MonthIndex:  i,
			StockReturn: float64(i) * 0.001,
		}
	}
	return series
}

// TestNewDataset_EpisodeCount tests the overlapping window count: one
// episode per possible start month
func TestNewDataset_EpisodeCount(t *testing.T) {
	series := makeSeries(1200) // 100 years

	dataset, err := NewDataset(series, 30)
	require.NoError(t, err)

	// 1200 - 360 + 1
	assert.Equal(t, 841, dataset.Count())
	assert.Equal(t, 30, dataset.HorizonYears())
}

// TestNewDataset_ExactFit tests the degenerate single-episode case
func TestNewDataset_ExactFit(t *testing.T) {
	dataset, err := NewDataset(makeSeries(360), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, dataset.Count())
}

// TestNewDataset_InsufficientData tests the series-too-short sentinel
func TestNewDataset_InsufficientData(t *testing.T) {
	_, err := NewDataset(makeSeries(359), 30)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

// TestNewDataset_InvalidInputs tests horizon and series validation
func TestNewDataset_InvalidInputs(t *testing.T) {
	_, err := NewDataset(makeSeries(120), 0)
	assert.Error(t, err)

	gapped := makeSeries(120)
	gapped[60].MonthIndex = 99
	_, err = NewDataset(gapped, 2)
	assert.Error(t, err)
}

// TestDataset_WindowsDoNotLookAhead tests that each episode's window is
// exactly its own horizon, starting one month after the previous episode
func TestDataset_WindowsDoNotLookAhead(t *testing.T) {
	series := makeSeries(30)
	dataset, err := NewDataset(series, 2)
	require.NoError(t, err)
	require.Equal(t, 7, dataset.Count())

	for i, ep := range dataset.Episodes() {
		assert.Equal(t, i, ep.ID)
		assert.Equal(t, i, ep.StartMonth)
		assert.Equal(t, 24, ep.Months())
		assert.Equal(t, series[i], ep.Window()[0])
		assert.Equal(t, series[i+23], ep.Window()[23])
	}
}

// TestDataset_WindowCapacityClamped tests that a window's capacity ends at
// its horizon, so even an appending caller cannot reach later months of the
// shared series
func TestDataset_WindowCapacityClamped(t *testing.T) {
	series := makeSeries(30)
	dataset, err := NewDataset(series, 2)
	require.NoError(t, err)

	ep, err := dataset.Episode(0)
	require.NoError(t, err)
	assert.Equal(t, ep.Months(), cap(ep.Window()))

	grown := append(ep.Window(), types.MonthlyRecord{MonthIndex: 999})
	assert.Equal(t, 24, series[24].MonthIndex)
	assert.Equal(t, 999, grown[24].MonthIndex)
}

// TestDataset_EpisodeLookup tests by-ID access and range errors
func TestDataset_EpisodeLookup(t *testing.T) {
	dataset, err := NewDataset(makeSeries(30), 2)
	require.NoError(t, err)

	ep, err := dataset.Episode(3)
	require.NoError(t, err)
	assert.Equal(t, 3, ep.StartMonth)

	_, err = dataset.Episode(-1)
	assert.Error(t, err)
	_, err = dataset.Episode(7)
	assert.Error(t, err)
}
