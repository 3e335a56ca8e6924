package di

import (
	"fmt"

	"github.com/aristath/dailychart/internal/config"
	"github.com/aristath/dailychart/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the scheduler and registers maintenance jobs.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	instances := &JobInstances{}
	container.Scheduler = scheduler.New(log)

	instances.WALCheckpoint = scheduler.NewWALCheckpointJob(container.MeasurementsDB, "PASSIVE", container.EventManager)
	instances.WALCheckpoint.SetLogger(log)
	if err := container.Scheduler.AddJob(cfg.Maintenance.CheckpointCron, instances.WALCheckpoint); err != nil {
		return nil, fmt.Errorf("failed to register %s job: %w", instances.WALCheckpoint.Name(), err)
	}

	instances.Retention = scheduler.NewRetentionJob(container.MeasurementService, cfg.Maintenance.RetentionDays)
	instances.Retention.SetLogger(log)
	if instances.Retention.Enabled() {
		if err := container.Scheduler.AddJob(cfg.Maintenance.RetentionCron, instances.Retention); err != nil {
			return nil, fmt.Errorf("failed to register %s job: %w", instances.Retention.Name(), err)
		}
	} else {
		log.Info().Msg("Retention disabled, keeping all measurements")
	}

	return instances, nil
}
