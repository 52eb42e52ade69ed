// Package handlers provides HTTP handlers for inventory monitoring.
package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/utils"
)

// Checker evaluates an inventory snapshot.
type Checker interface {
	Check(ctx context.Context, records []domain.InventoryRecord, signal *domain.HighDemandSet) (domain.InventoryResult, error)
}

// Handler handles inventory HTTP requests
type Handler struct {
	source  dataset.Source
	checker Checker
	log     zerolog.Logger
}

// NewHandler creates a new inventory handler
func NewHandler(source dataset.Source, checker Checker, log zerolog.Logger) *Handler {
	return &Handler{
		source:  source,
		checker: checker,
		log:     log.With().Str("handler", "inventory").Logger(),
	}
}

// HandleGetInventory handles GET /api/inventory.
// The standalone check runs without a demand signal, so alerts carry no forecast flag.
func (h *Handler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.source.LoadInventory(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load inventory")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	result, err := h.checker.Check(r.Context(), records, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to check inventory")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	utils.WriteResponse(w, r, http.StatusOK, result.Serialize(), h.log)
}
