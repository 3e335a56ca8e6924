package di

import (
	"github.com/aristath/dailychart/internal/database"
	"github.com/aristath/dailychart/internal/events"
	"github.com/aristath/dailychart/internal/modules/charts"
	chartshandlers "github.com/aristath/dailychart/internal/modules/charts/handlers"
	"github.com/aristath/dailychart/internal/modules/measurements"
	measurementshandlers "github.com/aristath/dailychart/internal/modules/measurements/handlers"
	"github.com/aristath/dailychart/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	// Databases
	MeasurementsDB *database.DB

	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Repositories
	MeasurementRepo *measurements.Repository

	// Services
	MeasurementService *measurements.Service
	ChartService       *charts.Service

	// Handlers
	MeasurementsHandler *measurementshandlers.Handler
	ChartsHandler       *chartshandlers.Handler

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// JobInstances holds references to registered jobs for manual triggering
type JobInstances struct {
	WALCheckpoint *scheduler.WALCheckpointJob
	Retention     *scheduler.RetentionJob
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.MeasurementsDB == nil {
		return nil
	}
	return c.MeasurementsDB.Close()
}
