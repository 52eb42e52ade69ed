package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the pricing routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/pricing", h.HandleGetPricing)
}
