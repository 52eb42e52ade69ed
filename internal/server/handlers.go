package server

import (
	"net/http"

	"github.com/aristath/retail-agents/internal/utils"
)

// handleRoot confirms the service is up
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.WriteResponse(w, r, http.StatusOK, map[string]string{
		"message": "retail agents backend is live",
	}, s.log)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "retail-agents",
	}

	if db := s.container.DB; db != nil {
		if err := db.QuickCheck(r.Context()); err != nil {
			s.log.Warn().Err(err).Msg("Dataset store health check failed")
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
			response["error"] = err.Error()
		}
	}

	utils.WriteResponse(w, r, status, response, s.log)
}
