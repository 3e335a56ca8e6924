package measurements

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/aristath/dailychart/internal/domain"
	"github.com/aristath/dailychart/internal/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidMeasurement is returned for measurements that cannot be stored
var ErrInvalidMeasurement = errors.New("invalid measurement")

// MaxSeedCount bounds a single seed request
const MaxSeedCount = 10000

// EventEmitter publishes change notifications
type EventEmitter interface {
	Emit(module string, data events.EventData)
}

// Store is the persistence contract used by the service
type Store interface {
	domain.MeasurementStore
	Insert(ctx context.Context, m domain.Measurement) error
	InsertBatch(ctx context.Context, ms []domain.Measurement) error
	Count(ctx context.Context) (int, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SeedConfig controls synthetic data generation
type SeedConfig struct {
	DefaultCount int
	MaxValue     float64
}

// Service provides measurement operations
type Service struct {
	store   Store
	emitter EventEmitter
	seed    SeedConfig
	now     func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	log zerolog.Logger
}

// NewService creates a new measurements service. emitter may be nil.
func NewService(store Store, emitter EventEmitter, seed SeedConfig, log zerolog.Logger) *Service {
	if seed.DefaultCount <= 0 {
		seed.DefaultCount = 100
	}
	if seed.MaxValue <= 0 {
		seed.MaxValue = 800
	}

	return &Service{
		store:   store,
		emitter: emitter,
		seed:    seed,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.With().Str("service", "measurements").Logger(),
	}
}

// SetClock replaces the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetRandSource replaces the random source used by Seed
func (s *Service) SetRandSource(src rand.Source) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = rand.New(src)
}

// Add stores a new measurement with a generated ID
func (s *Service) Add(ctx context.Context, date time.Time, value float64) (*domain.Measurement, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidMeasurement)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: value must be finite", ErrInvalidMeasurement)
	}

	m := domain.Measurement{
		ID:    uuid.New().String(),
		Date:  date,
		Value: value,
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to add measurement: %w", err)
	}

	s.emit(&events.MeasurementsChangedData{Added: 1, Source: "api"})
	return &m, nil
}

// Seed generates count measurements ending today: one per day going
// backwards, each with a random value in [0, MaxValue). count <= 0 uses the
// configured default.
func (s *Service) Seed(ctx context.Context, count int) ([]domain.Measurement, error) {
	if count <= 0 {
		count = s.seed.DefaultCount
	}
	if count > MaxSeedCount {
		return nil, fmt.Errorf("%w: seed count %d exceeds %d", ErrInvalidMeasurement, count, MaxSeedCount)
	}

	now := s.now()
	generated := make([]domain.Measurement, count)

	s.rngMu.Lock()
	for i := 0; i < count; i++ {
		generated[i] = domain.Measurement{
			ID:    uuid.New().String(),
			Date:  now.AddDate(0, 0, -i),
			Value: s.rng.Float64() * s.seed.MaxValue,
		}
	}
	s.rngMu.Unlock()

	if err := s.store.InsertBatch(ctx, generated); err != nil {
		return nil, fmt.Errorf("failed to seed measurements: %w", err)
	}

	s.log.Info().Int("count", count).Msg("Seeded test measurements")
	s.emit(&events.MeasurementsChangedData{Added: count, Source: "seed"})
	return generated, nil
}

// List returns measurements dated in [from, to), newest first
func (s *Service) List(ctx context.Context, from, to time.Time) ([]domain.Measurement, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidMeasurement)
	}

	ms, err := s.store.Query(ctx, domain.DateFilter{Field: "date", From: from, To: to}, domain.SortDateDescending)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return ms, nil
}

// Count returns the number of stored measurements
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// PurgeBefore deletes measurements dated before cutoff
func (s *Service) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge measurements: %w", err)
	}

	if deleted > 0 {
		s.emit(&events.MeasurementsChangedData{Removed: int(deleted), Source: "retention"})
	}
	return deleted, nil
}

func (s *Service) emit(data events.EventData) {
	if s.emitter != nil {
		s.emitter.Emit("measurements", data)
	}
}
