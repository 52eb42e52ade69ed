// Package handlers provides HTTP handlers for pricing suggestions.
package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/utils"
)

// Analyzer turns a pricing snapshot into suggestions.
type Analyzer interface {
	Analyze(ctx context.Context, records []domain.PricingRecord) (domain.PricingResult, error)
}

// Handler handles pricing HTTP requests
type Handler struct {
	source   dataset.Source
	analyzer Analyzer
	log      zerolog.Logger
}

// NewHandler creates a new pricing handler
func NewHandler(source dataset.Source, analyzer Analyzer, log zerolog.Logger) *Handler {
	return &Handler{
		source:   source,
		analyzer: analyzer,
		log:      log.With().Str("handler", "pricing").Logger(),
	}
}

// HandleGetPricing handles GET /api/pricing
func (h *Handler) HandleGetPricing(w http.ResponseWriter, r *http.Request) {
	records, err := h.source.LoadPricing(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load pricing")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), records)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to analyze pricing")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	utils.WriteResponse(w, r, http.StatusOK, result.Serialize(), h.log)
}
