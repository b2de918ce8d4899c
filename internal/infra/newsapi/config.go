package newsapi

import (
	"fmt"
	"net/url"
	"time"

	"newsflix/pkg/config"
)

// DefaultBaseURL is the production news API.
const DefaultBaseURL = "https://newsflix.fr/api"

// Config holds the configuration of the news API client.
type Config struct {
	// BaseURL is the API root; endpoint paths are appended to it.
	// Default: https://newsflix.fr/api
	BaseURL string

	// Timeout is the maximum duration of one HTTP request, body included.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	// Larger responses are rejected as a FormatError.
	// Default: 5242880 (5MB)
	MaxBodySize int64

	// RetryAttempts is the number of transport attempts per call.
	// 1 disables automatic retry; views are re-triggered by the user instead.
	// Default: 1
	RetryAttempts int

	// RateLimit is the sustained request rate per second. 0 disables pacing.
	// Default: 5
	RateLimit float64

	// RateBurst is the number of requests allowed in a burst.
	// Default: 10
	RateBurst int

	// UserAgent identifies the reader to the API.
	UserAgent string
}

// DefaultConfig returns the default client configuration.
//
// Example:
//
//	cfg := DefaultConfig()
//	cfg.BaseURL = "http://localhost:8080/api"
//	client, err := NewClient(cfg)
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       10 * time.Second,
		MaxBodySize:   5 * 1024 * 1024,
		RetryAttempts: 1,
		RateLimit:     5,
		RateBurst:     10,
		UserAgent:     "NewsFlixReader/1.0",
	}
}

// Validate checks that the configuration is usable.
//
// Validation rules:
//   - BaseURL: absolute http(s) URL
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - RetryAttempts: 1-5
//   - RateLimit: >= 0, RateBurst >= 1 when RateLimit > 0
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}

	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.RetryAttempts < 1 || c.RetryAttempts > 5 {
		return fmt.Errorf("retry attempts must be between 1 and 5, got %d", c.RetryAttempts)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}

	return nil
}

// LoadConfigFromEnv overlays environment variables on base.
// Invalid values are logged and ignored by the pkg/config helpers.
//
// Environment variables:
//   - NEWS_API_BASE_URL
//   - NEWS_API_TIMEOUT (duration)
//   - NEWS_API_MAX_BODY_SIZE (bytes)
//   - NEWS_API_RETRY_ATTEMPTS
//   - NEWS_API_RATE_LIMIT (requests per second)
//   - NEWS_API_RATE_BURST
func LoadConfigFromEnv(base Config) Config {
	cfg := base
	cfg.BaseURL = config.GetEnvString("NEWS_API_BASE_URL", cfg.BaseURL)
	cfg.Timeout = config.GetEnvDuration("NEWS_API_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(config.GetEnvInt("NEWS_API_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.RetryAttempts = config.GetEnvInt("NEWS_API_RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.RateLimit = config.GetEnvFloat("NEWS_API_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = config.GetEnvInt("NEWS_API_RATE_BURST", cfg.RateBurst)
	return cfg
}
