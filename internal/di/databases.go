// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/aristath/dailychart/internal/config"
	"github.com/aristath/dailychart/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens the measurements database and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	measurementsDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "measurements",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize measurements database: %w", err)
	}

	if err := measurementsDB.Migrate(); err != nil {
		measurementsDB.Close()
		return nil, fmt.Errorf("failed to migrate measurements database: %w", err)
	}
	container.MeasurementsDB = measurementsDB

	log.Info().Str("path", measurementsDB.Path()).Msg("Measurements database ready")

	return container, nil
}
