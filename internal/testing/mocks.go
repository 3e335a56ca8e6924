package testing

import (
	"context"
	"sort"
	"sync"

	"github.com/aristath/dailychart/internal/domain"
)

// MockMeasurementStore is an in-memory domain.MeasurementStore. It applies the
// filter and sort order the same way the SQLite repository does and records
// the last filter it received.
type MockMeasurementStore struct {
	mu           sync.Mutex
	Measurements []domain.Measurement
	Err          error
	LastFilter   domain.DateFilter
	LastOrder    domain.SortOrder
	Calls        int
}

// NewMockMeasurementStore creates a store preloaded with measurements
func NewMockMeasurementStore(ms ...domain.Measurement) *MockMeasurementStore {
	return &MockMeasurementStore{Measurements: ms}
}

// Add appends measurements to the store
func (m *MockMeasurementStore) Add(ms ...domain.Measurement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Measurements = append(m.Measurements, ms...)
}

// Query implements domain.MeasurementStore
func (m *MockMeasurementStore) Query(_ context.Context, filter domain.DateFilter, order domain.SortOrder) ([]domain.Measurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastFilter = filter
	m.LastOrder = order

	if m.Err != nil {
		return nil, m.Err
	}

	var out []domain.Measurement
	for _, ms := range m.Measurements {
		if filter.Matches(ms.Date) {
			out = append(out, ms)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == domain.SortDateAscending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}
