package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	series := &DailySeries{
		Values: []float64{0, 4, 0, 8, 0, 0, 2},
		Counts: []int{1, 1, 0, 2, 0, 0, 1},
	}

	s := Summarize(series)
	assert.Equal(t, 4, s.DaysWithData)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.InDelta(t, 3.5, s.MeanWithData, 1e-9)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize(&DailySeries{}))

	s := Summarize(&DailySeries{Values: []float64{0, 0}, Counts: []int{0, 0}})
	assert.Equal(t, 0, s.DaysWithData)
	assert.Equal(t, 0.0, s.MeanWithData)
}

func TestMovingAverage(t *testing.T) {
	out, err := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Nil(t, out[0])
	assert.Nil(t, out[1])
	require.NotNil(t, out[2])
	assert.InDelta(t, 2.0, *out[2], 1e-9)
	assert.InDelta(t, 3.0, *out[3], 1e-9)
	assert.InDelta(t, 4.0, *out[4], 1e-9)
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	values := []float64{1, 2, 3}

	for _, window := range []int{-1, 0, 1, 4} {
		_, err := MovingAverage(values, window)
		assert.ErrorIs(t, err, ErrInvalidTrendWindow, "window %d", window)
	}
}
