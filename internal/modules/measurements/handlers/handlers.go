// Package handlers provides HTTP handlers for measurement operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/dailychart/internal/domain"
	"github.com/aristath/dailychart/internal/modules/measurements"
	"github.com/aristath/dailychart/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles measurement HTTP requests
type Handler struct {
	service *measurements.Service
	loc     *time.Location
	log     zerolog.Logger
}

// NewHandler creates a new measurements handler. Day parameters are
// interpreted in loc.
func NewHandler(service *measurements.Service, loc *time.Location, log zerolog.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		service: service,
		loc:     loc,
		log:     log.With().Str("handler", "measurements").Logger(),
	}
}

type measurementResponse struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type addRequest struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

func (h *Handler) toResponse(ms []domain.Measurement) []measurementResponse {
	out := make([]measurementResponse, len(ms))
	for i, m := range ms {
		out[i] = measurementResponse{
			ID:    m.ID,
			Date:  m.Date.In(h.loc).Format(time.RFC3339),
			Value: m.Value,
		}
	}
	return out
}

// HandleList handles GET /api/measurements?from=YYYY-MM-DD&to=YYYY-MM-DD
// The to day is inclusive.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	from, err := utils.ParseDay(fromStr, h.loc)
	if err != nil {
		http.Error(w, "Invalid from date", http.StatusBadRequest)
		return
	}
	to, err := utils.ParseDay(toStr, h.loc)
	if err != nil {
		http.Error(w, "Invalid to date", http.StatusBadRequest)
		return
	}

	ms, err := h.service.List(r.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.handleError(w, err, "Failed to list measurements")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"measurements": h.toResponse(ms),
		"count":        len(ms),
	})
}

// HandleAdd handles POST /api/measurements
// Body: {"date": "2024-03-10" | RFC3339, "value": 12.5}
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, "value is required", http.StatusBadRequest)
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	m, err := h.service.Add(r.Context(), date, *req.Value)
	if err != nil {
		h.handleError(w, err, "Failed to add measurement")
		return
	}

	h.writeJSON(w, http.StatusCreated, h.toResponse([]domain.Measurement{*m})[0])
}

// HandleSeed handles POST /api/measurements/seed?count=N
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	count := 0
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid count", http.StatusBadRequest)
			return
		}
		count = parsed
	}

	generated, err := h.service.Seed(r.Context(), count)
	if err != nil {
		h.handleError(w, err, "Failed to seed measurements")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"added": len(generated),
	})
}

// parseDate accepts a bare day or a full RFC3339 timestamp; empty means now
func (h *Handler) parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return utils.ParseDay(s, h.loc)
}

func (h *Handler) handleError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, measurements.ErrInvalidMeasurement) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
