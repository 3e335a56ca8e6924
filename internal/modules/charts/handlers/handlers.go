// Package handlers provides HTTP handlers for chart data.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/dailychart/internal/events"
	"github.com/aristath/dailychart/internal/modules/charts"
	"github.com/aristath/dailychart/internal/utils"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const streamWriteTimeout = 10 * time.Second

// Handler handles chart HTTP requests
type Handler struct {
	service        *charts.Service
	bus            *events.Bus
	originPatterns []string
	log            zerolog.Logger
}

// NewHandler creates a new charts handler. originPatterns are the hosts
// allowed to open the websocket stream; nil allows same-origin only.
func NewHandler(service *charts.Service, bus *events.Bus, originPatterns []string, log zerolog.Logger) *Handler {
	return &Handler{
		service:        service,
		bus:            bus,
		originPatterns: originPatterns,
		log:            log.With().Str("handler", "charts").Logger(),
	}
}

// chartRequest holds parsed query parameters. A zero end follows the
// current day.
type chartRequest struct {
	end  time.Time
	rng  charts.ChartRange
	opts charts.ChartOptions
}

func (h *Handler) parseRequest(r *http.Request) (chartRequest, string) {
	req := chartRequest{rng: charts.RangeWeek}
	q := r.URL.Query()

	if endStr := q.Get("end"); endStr != "" {
		end, err := utils.ParseDay(endStr, h.service.Location())
		if err != nil {
			return req, "Invalid end date (want YYYY-MM-DD)"
		}
		req.end = end
	}

	if rangeStr := q.Get("range"); rangeStr != "" {
		rng, err := charts.ParseChartRange(rangeStr)
		if err != nil {
			return req, "Invalid range (must be week, month or year)"
		}
		req.rng = rng
	}

	if trendStr := q.Get("trend"); trendStr != "" {
		window, err := strconv.Atoi(trendStr)
		if err != nil {
			return req, "Invalid trend window"
		}
		req.opts.TrendWindow = window
	}

	return req, ""
}

// HandleGetDailyChart handles GET /api/charts/daily
func (h *Handler) HandleGetDailyChart(w http.ResponseWriter, r *http.Request) {
	req, msg := h.parseRequest(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	chart, err := h.service.GetChart(r.Context(), req.end, req.rng, req.opts)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, chart)
}

// HandleStreamDailyChart handles GET /api/charts/daily/stream.
// It upgrades to a websocket, sends the chart once, then resends it every
// time measurements change until the client disconnects.
func (h *Handler) HandleStreamDailyChart(w http.ResponseWriter, r *http.Request) {
	req, msg := h.parseRequest(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// Build once before upgrading so bad input still gets a plain HTTP error
	chart, err := h.service.GetChart(r.Context(), req.end, req.rng, req.opts)
	if err != nil {
		h.handleError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// Nothing is expected from the client; CloseRead handles control frames
	// and cancels ctx once the peer goes away.
	ctx := conn.CloseRead(r.Context())

	changed := make(chan struct{}, 1)
	unsubscribe := h.bus.Subscribe(events.MeasurementsChanged, func(*events.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	h.log.Debug().Str("range", string(req.rng)).Msg("Chart stream opened")

	if err := h.write(ctx, conn, chart); err != nil {
		h.log.Debug().Err(err).Msg("Chart stream write failed")
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("Chart stream closed by client")
			return
		case <-changed:
			chart, err := h.service.GetChart(ctx, req.end, req.rng, req.opts)
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to rebuild chart")
				conn.Close(websocket.StatusInternalError, "failed to build chart")
				return
			}
			if err := h.write(ctx, conn, chart); err != nil {
				h.log.Debug().Err(err).Msg("Chart stream write failed")
				return
			}
		}
	}
}

func (h *Handler) write(ctx context.Context, conn *websocket.Conn, chart *charts.Chart) error {
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, chart)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	if charts.IsInvalidArgument(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Error().Err(err).Msg("Failed to build chart")
	http.Error(w, "Failed to build chart", http.StatusInternalServerError)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
