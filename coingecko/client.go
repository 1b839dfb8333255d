package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/cryptoswap/swap-proxy/cache"
	"github.com/cryptoswap/swap-proxy/config"
	"github.com/cryptoswap/swap-proxy/metrics"
)

//go:generate mockgen -destination=mocks/api_client.go -package=mock_coingecko . APIClient

// ErrUpstreamUnavailable marks any upstream failure: network error, timeout,
// non-2xx status or an unusable body. The caller recovers through its
// cache-then-fallback chain; the client itself never retries.
var ErrUpstreamUnavailable = errors.New("upstream price source unavailable")

// APIClient defines the interface for the price source
type APIClient interface {
	// FetchPrices fetches USD prices for the given upstream identifiers in
	// one batched call. Identifiers missing from the response, or reporting
	// a non-positive price, are dropped from the snapshot.
	FetchPrices(ctx context.Context, ids []string) (cache.PriceSnapshot, error)

	// Healthy reports whether at least one fetch has succeeded
	Healthy() bool
}

// priceEntry is one token's entry in a simple/price response
type priceEntry struct {
	USD float64 `json:"usd"`
}

// Client implements APIClient against the CoinGecko simple/price endpoint
type Client struct {
	cfg             config.UpstreamConfig
	httpClient      *http.Client
	limiter         *rate.Limiter
	metricsWriter   *metrics.MetricsWriter
	successfulFetch atomic.Bool
	now             func() time.Time
}

// NewClient creates a new CoinGecko API client
func NewClient(cfg config.UpstreamConfig, metricsWriter *metrics.MetricsWriter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = COINGECKO_PUBLIC_URL
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60.0), 1)
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.Timeout,
				}).DialContext,
			},
		},
		limiter:       limiter,
		metricsWriter: metricsWriter,
		now:           time.Now,
	}
}

// Healthy reports whether at least one fetch has succeeded
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchPrices fetches USD prices for the given identifiers in one call
func (c *Client) FetchPrices(ctx context.Context, ids []string) (cache.PriceSnapshot, error) {
	if len(ids) == 0 {
		return cache.PriceSnapshot{}, fmt.Errorf("%w: no identifiers requested", ErrUpstreamUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.recordRequest("rate_limited")
			return cache.PriceSnapshot{}, fmt.Errorf("%w: rate limiter wait: %v", ErrUpstreamUnavailable, err)
		}
	}

	request, err := NewPricesRequestBuilder(c.cfg.BaseURL).
		WithIds(ids).
		WithCurrencies([]string{"usd"}).
		WithApiKey(c.cfg.APIKey).
		Build()
	if err != nil {
		return cache.PriceSnapshot{}, fmt.Errorf("%w: building request: %v", ErrUpstreamUnavailable, err)
	}

	requestStart := c.now()
	resp, err := c.httpClient.Do(request.WithContext(ctx))
	if err != nil {
		c.recordRequest("error")
		return cache.PriceSnapshot{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	duration := c.now().Sub(requestStart)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		status := "error"
		if resp.StatusCode == http.StatusTooManyRequests {
			status = "rate_limited"
		}
		c.recordRequest(status)
		return cache.PriceSnapshot{}, fmt.Errorf("%w: status %d after %.2fs: %s",
			ErrUpstreamUnavailable, resp.StatusCode, duration.Seconds(), string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordRequest("error")
		return cache.PriceSnapshot{}, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	snapshot, err := parseSimplePrices(body, ids, c.now())
	if err != nil {
		c.recordRequest("error")
		return cache.PriceSnapshot{}, err
	}

	c.recordRequest("success")
	c.successfulFetch.Store(true)
	log.Printf("CoinGecko: fetched prices for %d/%d tokens in %.2fs",
		len(snapshot.Prices), len(ids), duration.Seconds())

	return snapshot, nil
}

// parseSimplePrices turns a simple/price response body into a snapshot.
// Missing identifiers and non-positive prices are a partial failure for
// those tokens only; an entirely empty result counts as unavailable.
func parseSimplePrices(body []byte, ids []string, capturedAt time.Time) (cache.PriceSnapshot, error) {
	var raw map[string]priceEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return cache.PriceSnapshot{}, fmt.Errorf("%w: parsing response: %v", ErrUpstreamUnavailable, err)
	}

	prices := make(map[string]float64, len(ids))
	for _, id := range ids {
		entry, found := raw[id]
		if !found {
			log.Printf("CoinGecko: no price entry for %s", id)
			continue
		}
		if entry.USD <= 0 {
			log.Printf("CoinGecko: dropping non-positive price %f for %s", entry.USD, id)
			continue
		}
		prices[id] = entry.USD
	}

	if len(prices) == 0 {
		return cache.PriceSnapshot{}, fmt.Errorf("%w: response contained no usable prices", ErrUpstreamUnavailable)
	}

	return cache.PriceSnapshot{Prices: prices, CapturedAt: capturedAt}, nil
}

func (c *Client) recordRequest(status string) {
	if c.metricsWriter != nil {
		c.metricsWriter.RecordUpstreamRequest(status)
	}
}
