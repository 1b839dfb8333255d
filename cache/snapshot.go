package cache

import "time"

// PriceSnapshot is an immutable set of USD prices for the supported token
// universe, keyed by upstream identifier, plus its capture timestamp.
// Snapshots are replaced whole on a successful fetch, never merged.
type PriceSnapshot struct {
	// Prices maps upstream identifier to a strictly positive USD price
	Prices map[string]float64 `json:"prices"`

	// CapturedAt is when the snapshot was fetched
	CapturedAt time.Time `json:"captured_at"`
}

// Price returns the USD price for an upstream identifier
func (s PriceSnapshot) Price(id string) (float64, bool) {
	price, ok := s.Prices[id]
	return price, ok
}

// Age returns how old the snapshot is at the given time
func (s PriceSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.CapturedAt)
}
