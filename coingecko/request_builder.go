package coingecko

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Base URL for the public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"

	// Complete path for the simple price API endpoint
	PRICES_API_PATH = "/api/v3/simple/price"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// PricesRequestBuilder implements the Builder pattern for CoinGecko simple
// price API requests
type PricesRequestBuilder struct {
	baseURL   string
	params    map[string]string
	apiKey    string
	userAgent string
	headers   map[string]string
}

// NewPricesRequestBuilder creates a new request builder for the simple price
// endpoint
func NewPricesRequestBuilder(baseURL string) *PricesRequestBuilder {
	rb := &PricesRequestBuilder{
		baseURL:   baseURL,
		params:    make(map[string]string),
		headers:   make(map[string]string),
		userAgent: "Mozilla/5.0 Swap-Proxy",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// WithIds adds the coin IDs parameter
func (rb *PricesRequestBuilder) WithIds(ids []string) *PricesRequestBuilder {
	rb.params["ids"] = strings.Join(ids, ",")
	return rb
}

// WithCurrencies adds the vs_currencies parameter
func (rb *PricesRequestBuilder) WithCurrencies(currencies []string) *PricesRequestBuilder {
	rb.params["vs_currencies"] = strings.Join(currencies, ",")
	return rb
}

// WithApiKey sets an optional demo API key
func (rb *PricesRequestBuilder) WithApiKey(apiKey string) *PricesRequestBuilder {
	if apiKey != "" {
		rb.apiKey = apiKey
	}
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *PricesRequestBuilder) WithUserAgent(userAgent string) *PricesRequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *PricesRequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, PRICES_API_PATH)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}
	if rb.apiKey != "" {
		query.Add("x_cg_demo_api_key", rb.apiKey)
	}

	finalURL := fullPath
	queryString := query.Encode()
	if queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an http.Request object
func (rb *PricesRequestBuilder) Build() (*http.Request, error) {
	req, err := http.NewRequest("GET", rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
