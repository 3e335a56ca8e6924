package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aristath/dailychart/internal/config"
	"github.com/aristath/dailychart/internal/events"
	"github.com/aristath/dailychart/internal/modules/charts"
	chartshandlers "github.com/aristath/dailychart/internal/modules/charts/handlers"
	"github.com/aristath/dailychart/internal/modules/measurements"
	measurementshandlers "github.com/aristath/dailychart/internal/modules/measurements/handlers"
	testutil "github.com/aristath/dailychart/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int
	err   error
}

func (s stubCounter) Count(context.Context) (int, error) {
	return s.count, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               0,
		DevMode:            true,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestServer_Health(t *testing.T) {
	s := New(Config{
		Log:    zerolog.New(nil).Level(zerolog.Disabled),
		Config: testConfig(),
	})

	for _, path := range []string{"/health", "/api/health"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			s.Router().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "healthy", response["status"])
			assert.Equal(t, "dailychart", response["service"])
		})
	}
}

func TestServer_CORS(t *testing.T) {
	s := New(Config{
		Log:    zerolog.New(nil).Level(zerolog.Disabled),
		Config: testConfig(),
	})

	req := httptest.NewRequest("OPTIONS", "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSystemHandlers_HandleSystemStatus(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)

	tests := []struct {
		name     string
		counter  MeasurementCounter
		withDB   bool
		validate func(*testing.T, SystemStatusResponse)
	}{
		{
			name:    "healthy",
			counter: stubCounter{count: 42},
			withDB:  true,
			validate: func(t *testing.T, r SystemStatusResponse) {
				assert.Equal(t, "ok", r.Status)
				assert.True(t, r.DatabaseHealthy)
				require.NotNil(t, r.Database)
				assert.Greater(t, r.Database.PageSize, int64(0))
				assert.Equal(t, 42, r.MeasurementCount)
				assert.Empty(t, r.Warnings)
				assert.NotEmpty(t, r.GoVersion)
			},
		},
		{
			name:    "count failure degrades status",
			counter: stubCounter{err: errors.New("no such table")},
			withDB:  true,
			validate: func(t *testing.T, r SystemStatusResponse) {
				assert.Equal(t, "degraded", r.Status)
				assert.Contains(t, r.Warnings, "measurement count unavailable")
			},
		},
		{
			name: "no collaborators",
			validate: func(t *testing.T, r SystemStatusResponse) {
				assert.Equal(t, "ok", r.Status)
				assert.False(t, r.DatabaseHealthy)
				assert.Nil(t, r.Database)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandlers(log, nil, tt.counter)
			if tt.withDB {
				h = NewSystemHandlers(log, testutil.NewTestDB(t, "measurements"), tt.counter)
			}

			req := httptest.NewRequest("GET", "/api/system/status", nil)
			w := httptest.NewRecorder()
			h.HandleSystemStatus(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var response SystemStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			tt.validate(t, response)
		})
	}
}

func TestServer_SeedThenChart(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	db := testutil.NewTestDB(t, "measurements")
	bus := events.NewBus()
	now := func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

	repo := measurements.NewRepository(db.Conn(), log)
	measurementService := measurements.NewService(repo, events.NewManager(bus, log), measurements.SeedConfig{}, log)
	measurementService.SetClock(now)
	measurementService.SetRandSource(rand.NewSource(7))

	chartService := charts.NewService(repo, charts.ServiceConfig{Location: time.UTC, Now: now}, log)

	s := New(Config{
		Log:                 log,
		DB:                  db,
		Config:              testConfig(),
		Measurements:        measurementService,
		MeasurementsHandler: measurementshandlers.NewHandler(measurementService, time.UTC, log),
		ChartsHandler:       chartshandlers.NewHandler(chartService, bus, nil, log),
	})

	req := httptest.NewRequest("POST", "/api/measurements/seed", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/charts/daily?range=month", nil)
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var chart charts.Chart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	require.Len(t, chart.Values, 28)
	assert.Equal(t, 28, chart.Summary.DaysWithData, "seed writes one measurement per day")
	for i, v := range chart.Values {
		assert.GreaterOrEqual(t, v, 0.0, "day %d", i)
		assert.Less(t, v, 800.0, "day %d", i)
	}

	req = httptest.NewRequest("GET", "/api/system/status", nil)
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 100, status.MeasurementCount)
}
