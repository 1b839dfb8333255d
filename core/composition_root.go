package core

import (
	"context"
	"fmt"
	"os"

	"github.com/cryptoswap/swap-proxy/api"
	"github.com/cryptoswap/swap-proxy/cache"
	"github.com/cryptoswap/swap-proxy/coingecko"
	"github.com/cryptoswap/swap-proxy/config"
	"github.com/cryptoswap/swap-proxy/metrics"
	"github.com/cryptoswap/swap-proxy/quoter"
	"github.com/cryptoswap/swap-proxy/tokens"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// The token table is a startup invariant: a missing upstream identifier
	// or fallback price must never surface at request time
	tokenRegistry, err := tokens.NewRegistry(cfg.Tokens)
	if err != nil {
		return nil, fmt.Errorf("invalid token table: %w", err)
	}

	snapshotCache, err := cache.NewServiceFromConfig(cfg.Cache, cfg.Quoter.TTL)
	if err != nil {
		return nil, err
	}
	registry.Register(snapshotCache)

	apiClient := coingecko.NewClient(cfg.Upstream, metrics.NewMetricsWriter(metrics.ServiceUpstream))

	quoterService := quoter.NewService(cfg.Quoter, tokenRegistry, snapshotCache, apiClient)
	registry.Register(quoterService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := api.New(port, quoterService, apiClient)
	registry.Register(server)

	return registry, nil
}
