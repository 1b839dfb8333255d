package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"quoter":    "unknown",
			"coingecko": "unknown",
		},
	}

	if s.quoterService.Healthy() {
		status["services"].(map[string]string)["quoter"] = "up"
	}

	if s.apiClient.Healthy() {
		status["services"].(map[string]string)["coingecko"] = "up"
	}

	s.sendJSONResponse(w, http.StatusOK, status)
}
