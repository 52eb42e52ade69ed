// Package handlers provides HTTP handlers for the demand forecast.
package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/utils"
)

// Predictor produces a demand forecast from sales history.
type Predictor interface {
	Predict(ctx context.Context, sales []domain.SalesRecord) (domain.ForecastResults, error)
}

// Handler handles forecast HTTP requests
type Handler struct {
	source    dataset.Source
	predictor Predictor
	log       zerolog.Logger
}

// NewHandler creates a new forecast handler
func NewHandler(source dataset.Source, predictor Predictor, log zerolog.Logger) *Handler {
	return &Handler{
		source:    source,
		predictor: predictor,
		log:       log.With().Str("handler", "forecast").Logger(),
	}
}

// HandleGetForecast handles GET /api/forecast
// Optional ?limit=N returns the first N rows.
func (h *Handler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	limit, err := utils.QueryInt(r, "limit", 0)
	if err != nil {
		utils.WriteError(w, r, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	sales, err := h.source.LoadSales(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load sales history")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	forecast, err := h.predictor.Predict(r.Context(), sales)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to forecast demand")
		utils.WriteError(w, r, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	if limit > 0 && len(forecast) > limit {
		forecast = forecast[:limit]
	}

	utils.WriteResponse(w, r, http.StatusOK, forecast.Serialize(), h.log)
}
