// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/dailychart/internal/utils"
	"github.com/joho/godotenv"
)

// Aggregation modes for combining same-day measurements
const (
	AggregationExplicit = "explicit"
	AggregationLegacy   = "legacy"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Directory for measurements.db (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	Chart       ChartConfig
	Seed        SeedConfig
	Maintenance MaintenanceConfig

	CORSAllowedOrigins []string
}

// ChartConfig controls date arithmetic and aggregation
type ChartConfig struct {
	TimeZone    string // IANA name or "Local"
	DateField   string
	Aggregation string // explicit or legacy

	location *time.Location
}

// SeedConfig controls synthetic test-data generation
type SeedConfig struct {
	DefaultCount int
	MaxValue     float64
}

// MaintenanceConfig controls background jobs
type MaintenanceConfig struct {
	RetentionDays     int // 0 keeps everything
	CheckpointCron    string
	RetentionCron     string
	SchedulerDisabled bool
}

// Location returns the resolved chart time zone. Validate must have succeeded.
func (c *ChartConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir, err := filepath.Abs(getEnv("DAILYCHART_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  dataDir,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvAsInt("GO_PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		Chart: ChartConfig{
			TimeZone:    getEnv("CHART_TIMEZONE", "Local"),
			DateField:   getEnv("CHART_DATE_FIELD", "date"),
			Aggregation: strings.ToLower(getEnv("CHART_AGGREGATION", AggregationExplicit)),
		},
		Seed: SeedConfig{
			DefaultCount: getEnvAsInt("SEED_DEFAULT_COUNT", 100),
			MaxValue:     getEnvAsFloat("SEED_MAX_VALUE", 800),
		},
		Maintenance: MaintenanceConfig{
			RetentionDays:     getEnvAsInt("RETENTION_DAYS", 0),
			CheckpointCron:    getEnv("MAINTENANCE_SCHEDULE", "0 0 * * * *"),
			RetentionCron:     getEnv("RETENTION_SCHEDULE", "0 30 3 * * *"),
			SchedulerDisabled: getEnvAsBool("SCHEDULER_DISABLED", false),
		},
		CORSAllowedOrigins: utils.ParseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the measurements database file path
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "measurements.db")
}

// Validate checks configuration values and resolves the chart time zone
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.Chart.Aggregation {
	case AggregationExplicit, AggregationLegacy:
	default:
		return fmt.Errorf("invalid CHART_AGGREGATION %q (must be %s or %s)",
			c.Chart.Aggregation, AggregationExplicit, AggregationLegacy)
	}

	if strings.TrimSpace(c.Chart.DateField) == "" {
		return fmt.Errorf("CHART_DATE_FIELD cannot be empty")
	}

	loc, err := time.LoadLocation(c.Chart.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid CHART_TIMEZONE %q: %w", c.Chart.TimeZone, err)
	}
	c.Chart.location = loc

	if c.Seed.DefaultCount <= 0 {
		return fmt.Errorf("SEED_DEFAULT_COUNT must be positive, got %d", c.Seed.DefaultCount)
	}
	if c.Seed.MaxValue <= 0 {
		return fmt.Errorf("SEED_MAX_VALUE must be positive, got %g", c.Seed.MaxValue)
	}
	if c.Maintenance.RetentionDays < 0 {
		return fmt.Errorf("RETENTION_DAYS cannot be negative, got %d", c.Maintenance.RetentionDays)
	}

	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
