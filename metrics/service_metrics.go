package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "swap_proxy_"

// Service constants
const (
	ServiceQuoter   = "quoter"
	ServiceUpstream = "coingecko"
)

var (
	// UpstreamRequestsTotal counts HTTP requests to the price source
	// Cardinality: ~3 (success, error, rate_limited)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the upstream price source",
		},
		[]string{"status"},
	)

	// QuotesTotal counts served quotes by the price source that answered
	// Cardinality: ~3 (live, cached, fallback)
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "quotes_total",
			Help: "Total number of quotes served, by price provenance",
		},
		[]string{"provenance"},
	)

	// QuoteErrorsTotal counts rejected quote requests
	// Cardinality: ~3 (unsupported_token, invalid_amount, unavailable)
	QuoteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "quote_errors_total",
			Help: "Total number of rejected quote requests, by reason",
		},
		[]string{"reason"},
	)

	// RefreshCycleDuration tracks snapshot refresh duration per service
	// Cardinality: ~2 (number of services)
	RefreshCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "refresh_cycle_duration_seconds",
			Help: "Time taken to complete a snapshot refresh cycle",
		},
		[]string{"service"},
	)

	// CacheSizeGauge tracks the number of items in the snapshot store
	// Cardinality: ~2 (number of services)
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of items in service cache",
		},
		[]string{"service"},
	)

	// SnapshotAgeGauge tracks the age of the current snapshot
	SnapshotAgeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "snapshot_age_seconds",
			Help: "Age of the current price snapshot",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordUpstreamRequest records an upstream price source request
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	log.Printf("Metrics: %s upstream request recorded with status %s", mw.serviceName, status)
}

// RecordQuote records a served quote by provenance
func (mw *MetricsWriter) RecordQuote(provenance string) {
	QuotesTotal.WithLabelValues(provenance).Inc()
}

// RecordQuoteError records a rejected quote request by reason
func (mw *MetricsWriter) RecordQuoteError(reason string) {
	QuoteErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordRefreshCycle records the duration of a snapshot refresh cycle
func (mw *MetricsWriter) RecordRefreshCycle(duration time.Duration) {
	RefreshCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s refresh cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordCacheSize records the number of items in the service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	CacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordSnapshotAge records the age of the current snapshot
func (mw *MetricsWriter) RecordSnapshotAge(age time.Duration) {
	SnapshotAgeGauge.Set(age.Seconds())
}
