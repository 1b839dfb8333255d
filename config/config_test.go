package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "valid config",
			configYAML: `
quoter:
  ttl: 30s
  update_interval: 45s
upstream:
  base_url: "http://localhost:9999"
  timeout: 2s
  rate_limit_per_minute: 10
tokens:
  - symbol: BTC
    coingecko_id: bitcoin
    fallback_price_usd: 62000
  - symbol: ETH
    coingecko_id: ethereum
    fallback_price_usd: 3200
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.Quoter.TTL)
				assert.Equal(t, 45*time.Second, cfg.Quoter.UpdateInterval)
				assert.Equal(t, "http://localhost:9999", cfg.Upstream.BaseURL)
				assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
				assert.Equal(t, 10, cfg.Upstream.RateLimitPerMinute)
				require.Len(t, cfg.Tokens, 2)
				assert.Equal(t, "BTC", cfg.Tokens[0].Symbol)
				assert.Equal(t, "bitcoin", cfg.Tokens[0].CoingeckoID)
				assert.Equal(t, float64(62000), cfg.Tokens[0].FallbackPriceUSD)
			},
		},
		{
			name:       "empty file keeps defaults",
			configYAML: "",
			validateCfg: func(t *testing.T, cfg *Config) {
				def := DefaultConfig()
				assert.Equal(t, def.Quoter.TTL, cfg.Quoter.TTL)
				assert.Equal(t, def.Upstream.Timeout, cfg.Upstream.Timeout)
				assert.Equal(t, len(def.Tokens), len(cfg.Tokens))
			},
		},
		{
			name: "partial config fills in defaults",
			configYAML: `
quoter:
  ttl: 10s
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10*time.Second, cfg.Quoter.TTL)
				assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
				assert.Equal(t, int32(6), cfg.Quoter.AmountDecimals)
				assert.Equal(t, int32(8), cfg.Quoter.RateDecimals)
				assert.Len(t, cfg.Tokens, 8)
			},
		},
		{
			name: "invalid yaml",
			configYAML: `
quoter:
  ttl: [not, a, duration]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestConfig(t, tt.configYAML)

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultConfig_TokenUniverse(t *testing.T) {
	cfg := DefaultConfig()

	require.Len(t, cfg.Tokens, 8)
	for _, token := range cfg.Tokens {
		assert.NotEmpty(t, token.Symbol)
		assert.NotEmpty(t, token.CoingeckoID)
		assert.Greater(t, token.FallbackPriceUSD, float64(0), "token %s", token.Symbol)
	}

	assert.Equal(t, 60*time.Second, cfg.Quoter.TTL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Cache.Redis.Enabled)
}
