package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cryptoswap/swap-proxy/coingecko"
	"github.com/cryptoswap/swap-proxy/quoter"
)

type Server struct {
	port          string
	quoterService *quoter.Service
	apiClient     coingecko.APIClient
	server        *http.Server
}

func New(port string, quoterService *quoter.Service, apiClient coingecko.APIClient) *Server {
	return &Server{
		port:          port,
		quoterService: quoterService,
		apiClient:     apiClient,
	}
}

// Start implements core.Interface
func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)

	router.HandleFunc("/api/swap", s.handleSwap).Methods("POST")
	router.HandleFunc("/api/v1/rates", s.handleRates).Methods("GET")
	router.HandleFunc("/api/v1/rates/ws", s.handleRatesWebsocket)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
