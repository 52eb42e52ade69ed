package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the combined report routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/maf", h.HandleGetReport)
}
