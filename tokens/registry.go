package tokens

import (
	"fmt"
	"strings"

	"github.com/cryptoswap/swap-proxy/config"
)

// Token is one entry of the supported-token universe
type Token struct {
	// Symbol is the unique user-facing symbol, uppercase
	Symbol string

	// CoingeckoID is the upstream identifier used in price requests
	CoingeckoID string

	// FallbackPriceUSD is the static last-resort price
	FallbackPriceUSD float64
}

// Registry holds the fixed token universe. It is built once at startup and
// read-only afterwards; tokens outside the universe are rejected at the
// boundary.
type Registry struct {
	bySymbol map[string]Token
	ordered  []Token
	ids      []string
}

// NewRegistry builds a registry from configuration. Every token must carry a
// unique symbol, a unique upstream identifier and a strictly positive
// fallback price; a violation is a configuration defect and fails startup.
func NewRegistry(entries []config.TokenConfig) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("token table is empty")
	}

	r := &Registry{
		bySymbol: make(map[string]Token, len(entries)),
		ordered:  make([]Token, 0, len(entries)),
		ids:      make([]string, 0, len(entries)),
	}

	seenIDs := make(map[string]string, len(entries))

	for _, entry := range entries {
		symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("token with empty symbol")
		}
		if _, exists := r.bySymbol[symbol]; exists {
			return nil, fmt.Errorf("duplicate token symbol %s", symbol)
		}
		if entry.CoingeckoID == "" {
			return nil, fmt.Errorf("token %s has no coingecko_id", symbol)
		}
		if prev, exists := seenIDs[entry.CoingeckoID]; exists {
			return nil, fmt.Errorf("tokens %s and %s share coingecko_id %s", prev, symbol, entry.CoingeckoID)
		}
		if entry.FallbackPriceUSD <= 0 {
			return nil, fmt.Errorf("token %s has no positive fallback price", symbol)
		}

		token := Token{
			Symbol:           symbol,
			CoingeckoID:      entry.CoingeckoID,
			FallbackPriceUSD: entry.FallbackPriceUSD,
		}
		r.bySymbol[symbol] = token
		r.ordered = append(r.ordered, token)
		r.ids = append(r.ids, token.CoingeckoID)
		seenIDs[token.CoingeckoID] = symbol
	}

	return r, nil
}

// Lookup returns the token for a symbol, case-insensitively
func (r *Registry) Lookup(symbol string) (Token, bool) {
	token, ok := r.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return token, ok
}

// All returns the tokens in configuration order
func (r *Registry) All() []Token {
	return r.ordered
}

// IDs returns the upstream identifiers of all supported tokens, in
// configuration order. Price requests use the full set in one call.
func (r *Registry) IDs() []string {
	return r.ids
}

// Len returns the number of supported tokens
func (r *Registry) Len() int {
	return len(r.ordered)
}

// FallbackPrices materializes the static fallback table as an upstream
// identifier -> USD price map
func (r *Registry) FallbackPrices() map[string]float64 {
	prices := make(map[string]float64, len(r.ordered))
	for _, token := range r.ordered {
		prices[token.CoingeckoID] = token.FallbackPriceUSD
	}
	return prices
}
