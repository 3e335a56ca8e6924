package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the request/response chart routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/charts", func(r chi.Router) {
		r.Get("/daily", h.HandleGetDailyChart)
	})
}

// RegisterStreamRoutes registers the long-lived chart stream. It is kept
// separate so it can be mounted outside request timeouts.
func (h *Handler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/charts/daily/stream", h.HandleStreamDailyChart)
}
