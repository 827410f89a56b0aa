// Package finnhub provides a client for the Finnhub stock market API.
package finnhub

import (
	"os"
	"time"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Environment variable keys for the Finnhub client.
const (
	EnvKeyAPIKey  = "FINNHUB_API_KEY"
	EnvKeyBaseURL = "FINNHUB_BASE_URL"
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API token appended to every request
	BaseURL string        // Base URL for the API (e.g. "https://finnhub.io/api/v1")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Finnhub configuration from environment variables.
// An empty APIKey means enrichment is not available; callers decide how to
// degrade.
func LoadConfig() Config {
	base := os.Getenv(EnvKeyBaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv(EnvKeyAPIKey),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
