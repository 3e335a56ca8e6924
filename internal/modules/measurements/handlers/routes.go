package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all measurement routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/measurements", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleAdd)
		r.Post("/seed", h.HandleSeed)
	})
}
