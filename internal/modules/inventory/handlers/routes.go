package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the inventory routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.HandleGetInventory)
}
