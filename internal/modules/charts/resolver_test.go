package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolve_Ranges(t *testing.T) {
	ref := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	now := fixedNow(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		rng       ChartRange
		firstDate time.Time
	}{
		{"week", RangeWeek, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"month", RangeMonth, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
		{"year crosses leap day", RangeYear, time.Date(2023, 3, 12, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr, err := Resolve(ref, tt.rng, "date", time.UTC, now)
			require.NoError(t, err)

			assert.Equal(t, tt.rng, dr.Range)
			assert.Equal(t, tt.firstDate, dr.FirstDate)
			assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), dr.QueryUpperBound)
			assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), dr.DisplayLastDate)

			days, _ := tt.rng.Days()
			assert.Equal(t, days, int(dr.QueryUpperBound.Sub(dr.FirstDate).Hours()/24))

			assert.Equal(t, "date", dr.Filter.Field)
			assert.Equal(t, dr.FirstDate, dr.Filter.From)
			assert.Equal(t, dr.QueryUpperBound, dr.Filter.To)
		})
	}
}

func TestResolve_FilterBoundaries(t *testing.T) {
	dr, err := Resolve(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), RangeWeek, "date", time.UTC, nil)
	require.NoError(t, err)

	assert.True(t, dr.Filter.Matches(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)), "first day is inclusive")
	assert.True(t, dr.Filter.Matches(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)), "end of requested day is included")
	assert.False(t, dr.Filter.Matches(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)), "upper bound is exclusive")
	assert.False(t, dr.Filter.Matches(time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC)))
}

func TestResolve_DaylightSavingTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks move forward on 2024-03-10 in New York
	dr, err := Resolve(time.Date(2024, 3, 10, 12, 0, 0, 0, loc), RangeWeek, "date", loc, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, loc), dr.FirstDate)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), dr.QueryUpperBound)
	assert.Equal(t, 0, dr.QueryUpperBound.Hour())
}

func TestResolve_ReferenceInOtherZone(t *testing.T) {
	// 2024-03-11 02:00 UTC is still 2024-03-10 in New York
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	dr, err := Resolve(time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC), RangeWeek, "date", loc, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), dr.DisplayLastDate)
}

func TestResolve_Fallbacks(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 45, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("zero reference uses now", func(t *testing.T) {
		dr, err := Resolve(time.Time{}, RangeWeek, "date", time.UTC, fixedNow(now))
		require.NoError(t, err)
		assert.Equal(t, today, dr.DisplayLastDate)
		assert.Equal(t, today.AddDate(0, 0, 1), dr.QueryUpperBound)
		assert.Equal(t, today.AddDate(0, 0, -6), dr.FirstDate)
	})

	t.Run("year outside calendar uses now", func(t *testing.T) {
		dr, err := Resolve(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), RangeWeek, "date", time.UTC, fixedNow(now))
		require.NoError(t, err)
		assert.Equal(t, today, dr.DisplayLastDate)
	})

	t.Run("upper bound past year 9999", func(t *testing.T) {
		dr, err := Resolve(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), RangeWeek, "date", time.UTC, fixedNow(now))
		require.NoError(t, err)
		assert.Equal(t, today, dr.QueryUpperBound)
		assert.True(t, dr.FirstDate.Before(dr.QueryUpperBound))
	})
}

func TestResolve_InvalidArguments(t *testing.T) {
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := Resolve(ref, ChartRange("day"), "date", time.UTC, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Resolve(ref, RangeWeek, "  ", time.UTC, nil)
	assert.ErrorIs(t, err, ErrInvalidField)
}
