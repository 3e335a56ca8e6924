package testing

import (
	"fmt"
	"time"

	"github.com/aristath/dailychart/internal/domain"
)

// Day returns midnight UTC for the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewMeasurement builds a measurement with a deterministic ID.
func NewMeasurement(n int, date time.Time, value float64) domain.Measurement {
	return domain.Measurement{
		ID:    fmt.Sprintf("00000000-0000-0000-0000-%012d", n),
		Date:  date,
		Value: value,
	}
}

// NewWeekFixtures returns one measurement per day for the week ending
// 2024-03-10 (UTC), valued 1..7, at varying times of day.
func NewWeekFixtures() []domain.Measurement {
	start := Day(2024, 3, 4)
	out := make([]domain.Measurement, 0, 7)
	for i := 0; i < 7; i++ {
		at := start.AddDate(0, 0, i).Add(time.Duration(i) * time.Hour)
		out = append(out, NewMeasurement(i+1, at, float64(i+1)))
	}
	return out
}
