package domain

import "context"

// MeasurementStore executes date-filtered queries against persisted measurements.
// Chart code only builds the filter; it never caches or executes SQL itself.
type MeasurementStore interface {
	Query(ctx context.Context, filter DateFilter, order SortOrder) ([]Measurement, error)
}
