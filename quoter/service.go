package quoter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/cryptoswap/swap-proxy/cache"
	"github.com/cryptoswap/swap-proxy/coingecko"
	"github.com/cryptoswap/swap-proxy/config"
	"github.com/cryptoswap/swap-proxy/events"
	"github.com/cryptoswap/swap-proxy/metrics"
	"github.com/cryptoswap/swap-proxy/scheduler"
	"github.com/cryptoswap/swap-proxy/tokens"
)

// Service is the quote engine. It answers conversion requests from the
// freshest price source available: the cached snapshot while it is within
// TTL, a live fetch on expiry, the stale snapshot when the upstream fails,
// and the static fallback table when there is no snapshot at all.
type Service struct {
	cfg                 config.QuoterConfig
	registry            *tokens.Registry
	snapshots           *cache.SnapshotCache
	apiClient           coingecko.APIClient
	metricsWriter       *metrics.MetricsWriter
	subscriptionManager *events.SubscriptionManager
	updater             *scheduler.Scheduler
	refreshGroup        singleflight.Group

	// now is replaceable in tests
	now func() time.Time
}

// NewService creates a new quote engine
func NewService(cfg config.QuoterConfig, registry *tokens.Registry, snapshots *cache.SnapshotCache, apiClient coingecko.APIClient) *Service {
	return &Service{
		cfg:                 cfg,
		registry:            registry,
		snapshots:           snapshots,
		apiClient:           apiClient,
		metricsWriter:       metrics.NewMetricsWriter(metrics.ServiceQuoter),
		subscriptionManager: events.NewSubscriptionManager(),
		now:                 time.Now,
	}
}

// Start implements core.Interface. When an update interval is configured, a
// background refresher keeps the snapshot warm so quotes rarely wait on the
// upstream.
func (s *Service) Start(ctx context.Context) error {
	if s.registry == nil || s.snapshots == nil || s.apiClient == nil {
		return fmt.Errorf("quoter dependencies not provided")
	}

	if s.cfg.UpdateInterval > 0 {
		s.updater = scheduler.New(s.cfg.UpdateInterval, func(ctx context.Context) {
			if _, err := s.Refresh(ctx); err != nil {
				log.Printf("Quoter: background refresh failed: %v", err)
			}
		})
		s.updater.Start(ctx, true)
	}

	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.updater != nil {
		s.updater.Stop()
	}
}

// Config returns the quoter configuration, used by the transport layer for
// display rounding
func (s *Service) Config() config.QuoterConfig {
	return s.cfg
}

// Registry returns the supported-token registry
func (s *Service) Registry() *tokens.Registry {
	return s.registry
}

// Healthy implements the health check. The engine can always answer through
// the fallback table once the registry validated, so it is healthy as soon
// as it started.
func (s *Service) Healthy() bool {
	return s.registry != nil && s.snapshots != nil
}

// SubscribeSnapshotUpdate subscribes to snapshot-update notifications
func (s *Service) SubscribeSnapshotUpdate() *events.Subscription {
	return s.subscriptionManager.Subscribe()
}

// Quote answers one conversion request.
//
// Tokens outside the supported set fail with ErrUnsupportedToken and a
// negative amount fails with ErrInvalidAmount; every other request succeeds,
// degrading through cached and fallback prices when the upstream is down.
func (s *Service) Quote(ctx context.Context, fromSymbol, toSymbol string, amount decimal.Decimal) (Quote, error) {
	from, ok := s.registry.Lookup(fromSymbol)
	if !ok {
		s.metricsWriter.RecordQuoteError("unsupported_token")
		return Quote{}, fmt.Errorf("%w: %s", ErrUnsupportedToken, fromSymbol)
	}
	to, ok := s.registry.Lookup(toSymbol)
	if !ok {
		s.metricsWriter.RecordQuoteError("unsupported_token")
		return Quote{}, fmt.Errorf("%w: %s", ErrUnsupportedToken, toSymbol)
	}
	if amount.IsNegative() {
		s.metricsWriter.RecordQuoteError("invalid_amount")
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	fromPrice, toPrice, provenance := s.resolvePrices(ctx, from, to)

	// Prices are strictly positive by invariant: the adapter drops
	// non-positive upstream values and the registry rejects non-positive
	// fallback entries at startup.
	rate := decimal.NewFromFloat(fromPrice).Div(decimal.NewFromFloat(toPrice))
	toAmount := amount.Mul(rate)

	s.metricsWriter.RecordQuote(provenance.String())

	return Quote{
		FromToken:  from.Symbol,
		ToToken:    to.Symbol,
		FromAmount: amount,
		ToAmount:   toAmount,
		Rate:       rate,
		Provenance: provenance,
	}, nil
}

// resolvePrices walks the degradation chain for a token pair. Each stage is
// used only when it can price both tokens; a snapshot missing one of them is
// a partial failure for this pair and the chain continues.
func (s *Service) resolvePrices(ctx context.Context, from, to tokens.Token) (fromPrice, toPrice float64, provenance Provenance) {
	if s.snapshots.IsFresh(s.now()) {
		if snapshot, ok := s.snapshots.Get(); ok {
			if fromPrice, toPrice, ok := pairPrices(snapshot, from, to); ok {
				s.metricsWriter.RecordSnapshotAge(snapshot.Age(s.now()))
				return fromPrice, toPrice, ProvenanceCached
			}
		}
	}

	if snapshot, err := s.Refresh(ctx); err == nil {
		if fromPrice, toPrice, ok := pairPrices(snapshot, from, to); ok {
			return fromPrice, toPrice, ProvenanceLive
		}
	} else {
		log.Printf("Quoter: live fetch failed, degrading: %v", err)
	}

	// Stale snapshot beats the static table: explicit staleness is
	// preferred over prices of unknown age.
	if snapshot, ok := s.snapshots.Get(); ok {
		if fromPrice, toPrice, ok := pairPrices(snapshot, from, to); ok {
			s.metricsWriter.RecordSnapshotAge(snapshot.Age(s.now()))
			return fromPrice, toPrice, ProvenanceCached
		}
	}

	return from.FallbackPriceUSD, to.FallbackPriceUSD, ProvenanceFallback
}

func pairPrices(snapshot cache.PriceSnapshot, from, to tokens.Token) (float64, float64, bool) {
	fromPrice, okFrom := snapshot.Price(from.CoingeckoID)
	toPrice, okTo := snapshot.Price(to.CoingeckoID)
	if !okFrom || !okTo {
		return 0, 0, false
	}
	return fromPrice, toPrice, true
}

// Refresh performs one upstream fetch for the full identifier set and
// replaces the snapshot on success. Concurrent callers share a single
// in-flight fetch.
func (s *Service) Refresh(ctx context.Context) (cache.PriceSnapshot, error) {
	result, err, _ := s.refreshGroup.Do("refresh", func() (interface{}, error) {
		start := s.now()

		snapshot, err := s.apiClient.FetchPrices(ctx, s.registry.IDs())
		if err != nil {
			return nil, err
		}

		s.snapshots.Put(snapshot)
		s.metricsWriter.RecordRefreshCycle(s.now().Sub(start))
		s.metricsWriter.RecordCacheSize(s.snapshots.ItemCount())
		s.subscriptionManager.Emit(ctx)

		return snapshot, nil
	})
	if err != nil {
		return cache.PriceSnapshot{}, err
	}
	return result.(cache.PriceSnapshot), nil
}

// PriceBook is the current per-symbol USD price table, for the rates view
type PriceBook struct {
	// Prices maps token symbol to USD price
	Prices map[string]float64

	// Provenance of the snapshot the table was built from; tokens absent
	// from that snapshot are filled from the fallback table
	Provenance Provenance

	// CapturedAt is the snapshot capture time; zero for pure fallback
	CapturedAt time.Time
}

// CurrentPrices returns the best-effort price table for all supported
// tokens. Unlike Quote it never triggers a live fetch on a fresh cache, and
// fills per-token gaps from the fallback table.
func (s *Service) CurrentPrices(ctx context.Context) PriceBook {
	snapshot, ok := s.snapshots.Get()
	provenance := ProvenanceCached

	if !ok || !s.snapshots.IsFresh(s.now()) {
		if fresh, err := s.Refresh(ctx); err == nil {
			snapshot, ok = fresh, true
			provenance = ProvenanceLive
		}
	}

	book := PriceBook{
		Prices:     make(map[string]float64, s.registry.Len()),
		Provenance: provenance,
		CapturedAt: snapshot.CapturedAt,
	}
	if !ok {
		book.Provenance = ProvenanceFallback
		book.CapturedAt = time.Time{}
	}

	for _, token := range s.registry.All() {
		if ok {
			if price, found := snapshot.Price(token.CoingeckoID); found {
				book.Prices[token.Symbol] = price
				continue
			}
		}
		book.Prices[token.Symbol] = token.FallbackPriceUSD
	}

	return book
}
