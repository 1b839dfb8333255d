package quoter

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Quote request validation errors. Both are client input errors and map to
// bad-request at the transport boundary.
var (
	ErrUnsupportedToken = errors.New("unsupported token")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// Provenance tags which price source answered a quote
type Provenance string

const (
	// ProvenanceLive marks prices from a fetch performed for this quote
	ProvenanceLive Provenance = "live"

	// ProvenanceCached marks prices from the snapshot cache, fresh or stale
	ProvenanceCached Provenance = "cached"

	// ProvenanceFallback marks prices from the static fallback table
	ProvenanceFallback Provenance = "fallback"
)

func (p Provenance) String() string {
	return string(p)
}

// Quote is the result of one conversion request. Quotes are transient and
// never persisted. Amount and rate values are carried unrounded; display
// rounding happens at the transport boundary.
type Quote struct {
	FromToken  string
	ToToken    string
	FromAmount decimal.Decimal

	// ToAmount is FromAmount * Rate
	ToAmount decimal.Decimal

	// Rate is output units per one input unit
	Rate decimal.Decimal

	Provenance Provenance
}

// Cached reports whether the quote was answered without a live fetch
func (q Quote) Cached() bool {
	return q.Provenance != ProvenanceLive
}
