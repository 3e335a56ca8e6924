package charts

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/dailychart/internal/domain"
	"github.com/aristath/dailychart/internal/utils"
	"github.com/rs/zerolog"
)

// Chart is a rendered daily series with its axis labels
type Chart struct {
	Range     ChartRange `json:"range"`
	FirstDate string     `json:"first_date"` // YYYY-MM-DD
	LastDate  string     `json:"last_date"`  // requested end date, YYYY-MM-DD
	QueryEnd  string     `json:"query_end"`  // exclusive filter bound, YYYY-MM-DD
	Labels    []string   `json:"labels"`
	Values    []float64  `json:"values"`
	Counts    []int      `json:"counts"`
	Summary   Summary    `json:"summary"`
	Trend     []*float64 `json:"trend,omitempty"`
}

// ChartOptions are optional per-request settings
type ChartOptions struct {
	TrendWindow int // 0 disables the moving average
}

// ServiceConfig holds the chart settings taken from configuration
type ServiceConfig struct {
	DateField   string
	Aggregation AggregationMode
	Location    *time.Location
	Now         func() time.Time
}

// Service provides chart data operations
type Service struct {
	store domain.MeasurementStore
	cfg   ServiceConfig
	log   zerolog.Logger
}

// NewService creates a new charts service
func NewService(store domain.MeasurementStore, cfg ServiceConfig, log zerolog.Logger) *Service {
	if cfg.DateField == "" {
		cfg.DateField = "date"
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = AggregationExplicit
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		store: store,
		cfg:   cfg,
		log:   log.With().Str("service", "charts").Logger(),
	}
}

// Location returns the time zone used for calendar days
func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

// Today returns the start of the current day in the service time zone
func (s *Service) Today() time.Time {
	return utils.StartOfDay(s.cfg.Now(), s.cfg.Location)
}

// GetChart resolves the window ending on endDate, queries the store and
// builds the per-day series.
func (s *Service) GetChart(ctx context.Context, endDate time.Time, rng ChartRange, opts ChartOptions) (*Chart, error) {
	timer := utils.NewTimer("get_chart", s.log)
	defer timer.Stop()

	window, err := Resolve(endDate, rng, s.cfg.DateField, s.cfg.Location, s.cfg.Now)
	if err != nil {
		return nil, err
	}

	records, err := s.store.Query(ctx, window.Filter, domain.SortDateDescending)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}

	series, err := Aggregate(window.FirstDate, rng, records, s.cfg.Aggregation, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	chart := &Chart{
		Range:     rng,
		FirstDate: utils.FormatDay(window.FirstDate, s.cfg.Location),
		LastDate:  utils.FormatDay(window.DisplayLastDate, s.cfg.Location),
		QueryEnd:  utils.FormatDay(window.QueryUpperBound, s.cfg.Location),
		Labels:    make([]string, len(series.Days)),
		Values:    series.Values,
		Counts:    series.Counts,
		Summary:   Summarize(series),
	}
	for i, d := range series.Days {
		chart.Labels[i] = utils.FormatDay(d, s.cfg.Location)
	}

	if opts.TrendWindow != 0 {
		trend, err := MovingAverage(series.Values, opts.TrendWindow)
		if err != nil {
			return nil, err
		}
		chart.Trend = trend
	}

	s.log.Debug().
		Str("range", string(rng)).
		Str("filter", window.Filter.String()).
		Int("records", len(records)).
		Int("days_with_data", chart.Summary.DaysWithData).
		Msg("Chart built")

	return chart, nil
}
