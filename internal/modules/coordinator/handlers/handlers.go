// Package handlers exposes the combined pipeline run over HTTP.
package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/modules/coordinator"
	"github.com/aristath/retail-agents/internal/utils"
)

// RunIDHeader carries the id of the pipeline run that produced the response.
const RunIDHeader = "X-Run-ID"

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*coordinator.Report, error)
}

// Handler handles combined report requests
type Handler struct {
	runner Runner
	log    zerolog.Logger
}

// NewHandler creates a new coordinator handler
func NewHandler(runner Runner, log zerolog.Logger) *Handler {
	return &Handler{
		runner: runner,
		log:    log.With().Str("handler", "coordinator").Logger(),
	}
}

type errorResponse struct {
	Error string            `json:"error"`
	Stage coordinator.Stage `json:"stage,omitempty"`
}

// HandleGetReport handles GET /api/maf
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.Run(r.Context())
	if err != nil {
		stage, _ := coordinator.FailedStage(err)
		h.log.Error().Err(err).Str("stage", string(stage)).Msg("Pipeline run failed")
		utils.WriteResponse(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error(), Stage: stage}, h.log)
		return
	}

	w.Header().Set(RunIDHeader, report.RunID)
	utils.WriteResponse(w, r, http.StatusOK, report.Payload(), h.log)
}
