package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoswap/swap-proxy/config"
)

func validEntries() []config.TokenConfig {
	return []config.TokenConfig{
		{Symbol: "BTC", CoingeckoID: "bitcoin", FallbackPriceUSD: 62000},
		{Symbol: "ETH", CoingeckoID: "ethereum", FallbackPriceUSD: 3200},
		{Symbol: "USDT", CoingeckoID: "tether", FallbackPriceUSD: 1},
	}
}

func TestNewRegistry_Valid(t *testing.T) {
	registry, err := NewRegistry(validEntries())
	require.NoError(t, err)

	assert.Equal(t, 3, registry.Len())
	assert.Equal(t, []string{"bitcoin", "ethereum", "tether"}, registry.IDs())

	token, ok := registry.Lookup("BTC")
	require.True(t, ok)
	assert.Equal(t, "bitcoin", token.CoingeckoID)
	assert.Equal(t, float64(62000), token.FallbackPriceUSD)
}

func TestNewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []config.TokenConfig
	}{
		{
			name:    "empty table",
			entries: nil,
		},
		{
			name: "empty symbol",
			entries: []config.TokenConfig{
				{Symbol: "  ", CoingeckoID: "bitcoin", FallbackPriceUSD: 1},
			},
		},
		{
			name: "duplicate symbol",
			entries: []config.TokenConfig{
				{Symbol: "BTC", CoingeckoID: "bitcoin", FallbackPriceUSD: 1},
				{Symbol: "btc", CoingeckoID: "bitcoin-2", FallbackPriceUSD: 1},
			},
		},
		{
			name: "missing upstream id",
			entries: []config.TokenConfig{
				{Symbol: "BTC", FallbackPriceUSD: 1},
			},
		},
		{
			name: "duplicate upstream id",
			entries: []config.TokenConfig{
				{Symbol: "BTC", CoingeckoID: "bitcoin", FallbackPriceUSD: 1},
				{Symbol: "XBT", CoingeckoID: "bitcoin", FallbackPriceUSD: 1},
			},
		},
		{
			name: "missing fallback price",
			entries: []config.TokenConfig{
				{Symbol: "BTC", CoingeckoID: "bitcoin"},
			},
		},
		{
			name: "negative fallback price",
			entries: []config.TokenConfig{
				{Symbol: "BTC", CoingeckoID: "bitcoin", FallbackPriceUSD: -5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	registry, err := NewRegistry(validEntries())
	require.NoError(t, err)

	for _, symbol := range []string{"eth", "ETH", "Eth", " eth "} {
		token, ok := registry.Lookup(symbol)
		require.True(t, ok, "symbol %q", symbol)
		assert.Equal(t, "ETH", token.Symbol)
	}

	_, ok := registry.Lookup("DOGE")
	assert.False(t, ok)
}

func TestFallbackPrices(t *testing.T) {
	registry, err := NewRegistry(validEntries())
	require.NoError(t, err)

	prices := registry.FallbackPrices()
	assert.Equal(t, map[string]float64{
		"bitcoin":  62000,
		"ethereum": 3200,
		"tether":   1,
	}, prices)
}
