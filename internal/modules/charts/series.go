package charts

import (
	"fmt"
	"time"

	"github.com/aristath/dailychart/internal/domain"
	"github.com/aristath/dailychart/internal/utils"
)

// DailySeries is one value per calendar day, chronological from the start date
type DailySeries struct {
	Days   []time.Time
	Values []float64
	Counts []int // contributing measurements per day
}

// dailyBucket accumulates the measurements of one calendar day
type dailyBucket struct {
	day         time.Time
	accumulated float64
	count       int
	contributed bool
}

func (b *dailyBucket) add(value float64, mode AggregationMode) {
	switch mode {
	case AggregationLegacy:
		if b.accumulated == 0 {
			b.accumulated = value
			b.count = 1
		} else {
			b.accumulated += value
			b.count++
		}
	default:
		b.accumulated += value
		b.count++
		b.contributed = true
	}
}

func (b *dailyBucket) value(mode AggregationMode) float64 {
	switch mode {
	case AggregationLegacy:
		if b.accumulated != 0 {
			return b.accumulated / float64(b.count)
		}
		return 0
	default:
		if b.contributed {
			return b.accumulated / float64(b.count)
		}
		return 0
	}
}

// Aggregate merges records into one bucket per calendar day of the range
// starting at startDate. Records outside the range are ignored. Records are
// applied in slice order, which only matters in legacy mode.
func Aggregate(startDate time.Time, rng ChartRange, records []domain.Measurement, mode AggregationMode, loc *time.Location) (*DailySeries, error) {
	days, err := rng.Days()
	if err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is zero", ErrInvalidStartDate)
	}
	if mode != AggregationExplicit && mode != AggregationLegacy {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAggregationMode, string(mode))
	}
	if loc == nil {
		loc = time.Local
	}

	start := utils.StartOfDay(startDate, loc)
	buckets := make([]dailyBucket, days)
	index := make(map[utils.DayKey]int, days)
	for i := range buckets {
		day := start.AddDate(0, 0, i)
		buckets[i].day = day
		index[utils.KeyOf(day, loc)] = i
	}

	for _, r := range records {
		i, ok := index[utils.KeyOf(r.Date, loc)]
		if !ok {
			continue
		}
		buckets[i].add(r.Value, mode)
	}

	series := &DailySeries{
		Days:   make([]time.Time, days),
		Values: make([]float64, days),
		Counts: make([]int, days),
	}
	for i := range buckets {
		series.Days[i] = buckets[i].day
		series.Values[i] = buckets[i].value(mode)
		series.Counts[i] = buckets[i].count
	}

	return series, nil
}

// BuildSeries returns the per-day values of Aggregate; its length always
// equals the range's day count.
func BuildSeries(startDate time.Time, rng ChartRange, records []domain.Measurement, mode AggregationMode, loc *time.Location) ([]float64, error) {
	series, err := Aggregate(startDate, rng, records, mode, loc)
	if err != nil {
		return nil, err
	}
	return series.Values, nil
}
