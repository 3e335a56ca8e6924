package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/aristath/dailychart/internal/database"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const statusCheckTimeout = 5 * time.Second

// MeasurementCounter reports the number of stored measurements
type MeasurementCounter interface {
	Count(ctx context.Context) (int, error)
}

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log          zerolog.Logger
	db           *database.DB
	measurements MeasurementCounter
	startupTime  time.Time
}

// NewSystemHandlers creates a new system handlers instance. db and
// measurements may be nil.
func NewSystemHandlers(log zerolog.Logger, db *database.DB, measurements MeasurementCounter) *SystemHandlers {
	return &SystemHandlers{
		log:          log.With().Str("handler", "system").Logger(),
		db:           db,
		measurements: measurements,
		startupTime:  time.Now(),
	}
}

// SystemStatusResponse is the payload of GET /api/system/status
type SystemStatusResponse struct {
	Status           string          `json:"status"`
	UptimeSeconds    int64           `json:"uptime_seconds"`
	GoVersion        string          `json:"go_version"`
	Goroutines       int             `json:"goroutines"`
	CPUPercent       float64         `json:"cpu_percent"`
	MemoryPercent    float64         `json:"memory_percent"`
	Database         *database.Stats `json:"database,omitempty"`
	DatabaseHealthy  bool            `json:"database_healthy"`
	MeasurementCount int             `json:"measurement_count"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// HandleSystemStatus returns process, host and database status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	ctx, cancel := context.WithTimeout(r.Context(), statusCheckTimeout)
	defer cancel()

	response := SystemStatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}
	response.CPUPercent, response.MemoryPercent = h.getSystemStats()

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			h.log.Warn().Err(err).Msg("Database health check failed")
			response.Warnings = append(response.Warnings, "database health check failed")
		} else {
			response.DatabaseHealthy = true
		}

		stats, err := h.db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to get database stats")
			response.Warnings = append(response.Warnings, "database stats unavailable")
		} else {
			response.Database = stats
		}
	}

	if h.measurements != nil {
		count, err := h.measurements.Count(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to count measurements")
			response.Warnings = append(response.Warnings, "measurement count unavailable")
		} else {
			response.MeasurementCount = count
		}
	}

	if len(response.Warnings) > 0 {
		response.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// getSystemStats returns CPU and memory usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	// 100ms sample keeps the endpoint responsive
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
