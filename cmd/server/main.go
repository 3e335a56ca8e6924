// Package main is the entry point for the dailychart server.
// It stores measurements in SQLite and serves per-day charts over HTTP and
// websocket.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/dailychart/internal/config"
	"github.com/aristath/dailychart/internal/di"
	"github.com/aristath/dailychart/internal/server"
	"github.com/aristath/dailychart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Msg("Starting dailychart")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	srv := server.New(server.Config{
		Log:                 log,
		DB:                  container.MeasurementsDB,
		Config:              cfg,
		Measurements:        container.MeasurementService,
		MeasurementsHandler: container.MeasurementsHandler,
		ChartsHandler:       container.ChartsHandler,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	if cfg.Maintenance.SchedulerDisabled {
		log.Info().Msg("Scheduler disabled")
	} else {
		// Apply retention once at startup instead of waiting for the first tick
		if jobs.Retention.Enabled() {
			if err := container.Scheduler.RunNow(jobs.Retention); err != nil {
				log.Error().Err(err).Msg("Startup retention failed")
			}
		}
		container.Scheduler.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if !cfg.Maintenance.SchedulerDisabled {
		container.Scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if _, _, err := container.MeasurementsDB.WALCheckpoint("TRUNCATE"); err != nil {
		log.Warn().Err(err).Msg("Final WAL checkpoint failed")
	}

	log.Info().Msg("Server stopped")
}
