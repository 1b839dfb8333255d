package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cryptoswap/swap-proxy/quoter"
)

// swapRequest is the inbound conversion request. fromAmount may arrive as a
// JSON string or number; form-encoded bodies are accepted too.
type swapRequest struct {
	FromAmount flexString `json:"fromAmount"`
	FromToken  string     `json:"fromToken"`
	ToToken    string     `json:"toToken"`
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexString(asString)
		return nil
	}
	*f = flexString(strings.TrimSpace(string(data)))
	return nil
}

// swapResponse is the success envelope of POST /api/swap
type swapResponse struct {
	Success    bool   `json:"success"`
	FromAmount string `json:"fromAmount"`
	FromToken  string `json:"fromToken"`
	ToAmount   string `json:"toAmount"`
	ToToken    string `json:"toToken"`
	Rate       string `json:"rate"`
	Cached     bool   `json:"cached"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleSwap answers POST /api/swap conversion requests
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	request, err := parseSwapRequest(r)
	if err != nil {
		s.sendJSONResponse(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(string(request.FromAmount)))
	if err != nil {
		s.sendJSONResponse(w, http.StatusBadRequest, errorResponse{Message: "invalid amount: " + string(request.FromAmount)})
		return
	}

	quote, err := s.quoterService.Quote(r.Context(), request.FromToken, request.ToToken, amount)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, quoter.ErrUnsupportedToken) || errors.Is(err, quoter.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
		s.sendJSONResponse(w, status, errorResponse{Message: err.Error()})
		return
	}

	cfg := s.quoterService.Config()
	s.sendJSONResponse(w, http.StatusOK, swapResponse{
		Success:    true,
		FromAmount: quote.FromAmount.String(),
		FromToken:  quote.FromToken,
		ToAmount:   quote.ToAmount.StringFixed(cfg.AmountDecimals),
		ToToken:    quote.ToToken,
		Rate:       quote.Rate.StringFixed(cfg.RateDecimals),
		Cached:     quote.Cached(),
	})
}

// parseSwapRequest reads the body as JSON or as a form, depending on the
// content type
func parseSwapRequest(r *http.Request) (swapRequest, error) {
	var request swapRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return request, errors.New("malformed form body")
		}
		request.FromAmount = flexString(r.PostFormValue("fromAmount"))
		request.FromToken = r.PostFormValue("fromToken")
		request.ToToken = r.PostFormValue("toToken")
		return request, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Printf("Swap: malformed request body: %v", err)
		return request, errors.New("malformed request body")
	}
	return request, nil
}
