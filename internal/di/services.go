package di

import (
	"fmt"

	"github.com/aristath/dailychart/internal/config"
	"github.com/aristath/dailychart/internal/events"
	"github.com/aristath/dailychart/internal/modules/charts"
	chartshandlers "github.com/aristath/dailychart/internal/modules/charts/handlers"
	"github.com/aristath/dailychart/internal/modules/measurements"
	measurementshandlers "github.com/aristath/dailychart/internal/modules/measurements/handlers"
	"github.com/rs/zerolog"
)

// InitializeServices creates the event bus, repositories, services and handlers
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.MeasurementsDB == nil {
		return fmt.Errorf("container must have an open measurements database")
	}

	aggregation, err := charts.ParseAggregationMode(cfg.Chart.Aggregation)
	if err != nil {
		return err
	}
	loc := cfg.Chart.Location()

	container.EventBus = events.NewBus()
	container.EventManager = events.NewManager(container.EventBus, log)

	container.MeasurementRepo = measurements.NewRepository(container.MeasurementsDB.Conn(), log)

	container.MeasurementService = measurements.NewService(
		container.MeasurementRepo,
		container.EventManager,
		measurements.SeedConfig{
			DefaultCount: cfg.Seed.DefaultCount,
			MaxValue:     cfg.Seed.MaxValue,
		},
		log,
	)

	container.ChartService = charts.NewService(container.MeasurementRepo, charts.ServiceConfig{
		DateField:   cfg.Chart.DateField,
		Aggregation: aggregation,
		Location:    loc,
	}, log)

	container.MeasurementsHandler = measurementshandlers.NewHandler(container.MeasurementService, loc, log)
	container.ChartsHandler = chartshandlers.NewHandler(
		container.ChartService,
		container.EventBus,
		websocketOriginPatterns(cfg.CORSAllowedOrigins),
		log,
	)

	log.Info().
		Str("aggregation", string(aggregation)).
		Str("timezone", loc.String()).
		Str("date_field", cfg.Chart.DateField).
		Msg("Services initialized")

	return nil
}
