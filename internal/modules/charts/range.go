// Package charts builds per-day chart series from stored measurements.
package charts

import (
	"errors"
	"fmt"
	"strings"
)

// Invalid-argument errors returned by the resolver and series builder.
var (
	ErrInvalidRange           = errors.New("invalid chart range")
	ErrInvalidField           = errors.New("invalid date field")
	ErrInvalidStartDate       = errors.New("invalid start date")
	ErrInvalidAggregationMode = errors.New("invalid aggregation mode")
	ErrInvalidTrendWindow     = errors.New("invalid trend window")
)

// IsInvalidArgument reports whether err was caused by caller input
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrInvalidStartDate) ||
		errors.Is(err, ErrInvalidAggregationMode) ||
		errors.Is(err, ErrInvalidTrendWindow)
}

// ChartRange selects the day-count window of a chart
type ChartRange string

const (
	RangeWeek  ChartRange = "week"
	RangeMonth ChartRange = "month"
	RangeYear  ChartRange = "year"
)

// Days returns the number of calendar days covered by the range
func (r ChartRange) Days() (int, error) {
	switch r {
	case RangeWeek:
		return 7, nil
	case RangeMonth:
		return 28, nil
	case RangeYear:
		return 365, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be week, month or year)", ErrInvalidRange, string(r))
	}
}

// ParseChartRange parses a user-supplied range name, case-insensitively
func ParseChartRange(s string) (ChartRange, error) {
	r := ChartRange(strings.ToLower(strings.TrimSpace(s)))
	if _, err := r.Days(); err != nil {
		return "", err
	}
	return r, nil
}

// AggregationMode decides how same-day measurements are combined
type AggregationMode string

const (
	// AggregationExplicit tracks contributions with a count, so zero-valued
	// measurements are averaged like any other value.
	AggregationExplicit AggregationMode = "explicit"
	// AggregationLegacy treats an accumulated value of exactly 0 as "no data
	// yet". A zero-valued measurement therefore restarts the average for its
	// day, and the result depends on record order.
	AggregationLegacy AggregationMode = "legacy"
)

// ParseAggregationMode parses a configured mode name
func ParseAggregationMode(s string) (AggregationMode, error) {
	switch m := AggregationMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AggregationExplicit, AggregationLegacy:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAggregationMode, s)
	}
}
