package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the swap-proxy service
type Config struct {
	Quoter   QuoterConfig   `yaml:"quoter"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Tokens   []TokenConfig  `yaml:"tokens"`
}

// QuoterConfig configures the quote engine
type QuoterConfig struct {
	// TTL is how long a price snapshot is considered fresh
	TTL time.Duration `yaml:"ttl"`

	// UpdateInterval is the period of the background snapshot refresh.
	// Zero disables background refresh; quotes then refresh on demand.
	UpdateInterval time.Duration `yaml:"update_interval"`

	// AmountDecimals is the display precision for output amounts
	AmountDecimals int32 `yaml:"amount_decimals"`

	// RateDecimals is the display precision for rates
	RateDecimals int32 `yaml:"rate_decimals"`
}

// UpstreamConfig configures the CoinGecko price source
type UpstreamConfig struct {
	// BaseURL overrides the public CoinGecko URL (used in tests)
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single upstream request, connection included
	Timeout time.Duration `yaml:"timeout"`

	// RateLimitPerMinute caps outbound request rate; zero means unlimited
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// APIKey is an optional CoinGecko demo API key
	APIKey string `yaml:"api_key"`
}

// TokenConfig declares one supported token: its symbol, its CoinGecko
// identifier and the static USD price used when neither a live fetch nor a
// cached snapshot is available
type TokenConfig struct {
	Symbol           string  `yaml:"symbol"`
	CoingeckoID      string  `yaml:"coingecko_id"`
	FallbackPriceUSD float64 `yaml:"fallback_price_usd"`
}

// DefaultConfig returns the configuration used when no file is provided,
// matching the reference deployment
func DefaultConfig() *Config {
	return &Config{
		Quoter: QuoterConfig{
			TTL:            60 * time.Second,
			UpdateInterval: 0,
			AmountDecimals: 6,
			RateDecimals:   8,
		},
		Upstream: UpstreamConfig{
			Timeout:            5 * time.Second,
			RateLimitPerMinute: 30,
		},
		Cache: DefaultCacheConfig(),
		Tokens: []TokenConfig{
			{Symbol: "BTC", CoingeckoID: "bitcoin", FallbackPriceUSD: 62000},
			{Symbol: "ETH", CoingeckoID: "ethereum", FallbackPriceUSD: 3200},
			{Symbol: "BNB", CoingeckoID: "binancecoin", FallbackPriceUSD: 580},
			{Symbol: "USDT", CoingeckoID: "tether", FallbackPriceUSD: 1},
			{Symbol: "SOL", CoingeckoID: "solana", FallbackPriceUSD: 145},
			{Symbol: "ADA", CoingeckoID: "cardano", FallbackPriceUSD: 0.45},
			{Symbol: "XRP", CoingeckoID: "ripple", FallbackPriceUSD: 0.62},
			{Symbol: "DOT", CoingeckoID: "polkadot", FallbackPriceUSD: 7.5},
		},
	}
}

// LoadConfig reads configuration from a YAML file, applying defaults for
// fields the file leaves unset
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Quoter.TTL <= 0 {
		c.Quoter.TTL = def.Quoter.TTL
	}
	if c.Quoter.AmountDecimals <= 0 {
		c.Quoter.AmountDecimals = def.Quoter.AmountDecimals
	}
	if c.Quoter.RateDecimals <= 0 {
		c.Quoter.RateDecimals = def.Quoter.RateDecimals
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = def.Upstream.Timeout
	}
	if len(c.Tokens) == 0 {
		c.Tokens = def.Tokens
	}
}
