package api

import (
	"net/http"
	"time"
)

// ratesResponse is the payload of GET /api/v1/rates and of each websocket
// push: the current USD price per supported token
type ratesResponse struct {
	Prices     map[string]float64 `json:"prices"`
	Provenance string             `json:"provenance"`
	CapturedAt *time.Time         `json:"capturedAt,omitempty"`
	AgeSeconds float64            `json:"ageSeconds,omitempty"`
}

func (s *Server) buildRatesResponse(r *http.Request) ratesResponse {
	book := s.quoterService.CurrentPrices(r.Context())

	response := ratesResponse{
		Prices:     book.Prices,
		Provenance: book.Provenance.String(),
	}
	if !book.CapturedAt.IsZero() {
		capturedAt := book.CapturedAt
		response.CapturedAt = &capturedAt
		response.AgeSeconds = time.Since(capturedAt).Seconds()
	}
	return response
}

// handleRates serves the current price table
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, http.StatusOK, s.buildRatesResponse(r))
}
