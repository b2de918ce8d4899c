// Package config loads the reader configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file, then
// environment variables. The result is validated before use.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"newsflix/internal/infra/newsapi"
	envconfig "newsflix/pkg/config"
)

// Storage drivers.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config is the complete reader configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig configures the news API client.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxBodySize   int64         `yaml:"max_body_size"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RateLimit     float64       `yaml:"rate_limit"`
	RateBurst     int           `yaml:"rate_burst"`
}

// StorageConfig selects where the filter state is persisted.
// Path is a directory for the file driver and a database file for sqlite.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the log destination of the interactive UI.
type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	api := newsapi.DefaultConfig()
	return Config{
		API: APIConfig{
			BaseURL:       api.BaseURL,
			Timeout:       api.Timeout,
			MaxBodySize:   api.MaxBodySize,
			RetryAttempts: api.RetryAttempts,
			RateLimit:     api.RateLimit,
			RateBurst:     api.RateBurst,
		},
		Storage: StorageConfig{Driver: StorageFile},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// READER_CONFIG when path is empty) and the environment.
// A missing explicit file is an error; no file at all is fine.
//
// Environment variables:
//   - NEWS_API_BASE_URL, NEWS_API_TIMEOUT, NEWS_API_MAX_BODY_SIZE,
//     NEWS_API_RETRY_ATTEMPTS, NEWS_API_RATE_LIMIT, NEWS_API_RATE_BURST
//   - READER_STORAGE (file | sqlite), READER_STORAGE_PATH
//   - METRICS_ADDR
//   - LOG_FILE
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("load config: %w", err)
//	}
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("READER_CONFIG")
	}
	if path != "" {
		// #nosec G304 -- path comes from a CLI flag or the environment
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.fillDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	api := newsapi.LoadConfigFromEnv(c.ClientConfig())
	c.API = APIConfig{
		BaseURL:       api.BaseURL,
		Timeout:       api.Timeout,
		MaxBodySize:   api.MaxBodySize,
		RetryAttempts: api.RetryAttempts,
		RateLimit:     api.RateLimit,
		RateBurst:     api.RateBurst,
	}

	c.Storage.Driver = envconfig.GetEnvString("READER_STORAGE", c.Storage.Driver)
	c.Storage.Path = envconfig.GetEnvString("READER_STORAGE_PATH", c.Storage.Path)
	c.Metrics.Addr = envconfig.GetEnvString("METRICS_ADDR", c.Metrics.Addr)
	c.Log.File = envconfig.GetEnvString("LOG_FILE", c.Log.File)
}

// fillDerived fills paths that default to the user data directory.
func (c *Config) fillDerived() error {
	if c.Storage.Path != "" && c.Log.File != "" {
		return nil
	}
	dir, err := DataDir()
	if err != nil {
		return err
	}
	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case StorageSQLite:
			c.Storage.Path = filepath.Join(dir, "reader.db")
		default:
			c.Storage.Path = filepath.Join(dir, "preferences")
		}
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dir, "reader.log")
	}
	return nil
}

// DataDir returns $XDG_DATA_HOME/newsflix, or ~/.local/share/newsflix.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "newsflix"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "newsflix"), nil
}

// Validate checks configuration correctness.
// Client limits are checked again, in full, by newsapi.Config.Validate.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if err := envconfig.ValidateDurationRange(c.API.Timeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		return fmt.Errorf("api.timeout: %w", err)
	}
	if c.API.RetryAttempts < 1 || c.API.RetryAttempts > 5 {
		return fmt.Errorf("api.retry_attempts must be between 1 and 5, got %d", c.API.RetryAttempts)
	}

	switch c.Storage.Driver {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StorageFile, StorageSQLite, c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path cannot be empty")
	}
	return nil
}

// ClientConfig converts the API section into a news API client configuration.
func (c *Config) ClientConfig() newsapi.Config {
	cfg := newsapi.DefaultConfig()
	cfg.BaseURL = c.API.BaseURL
	cfg.Timeout = c.API.Timeout
	cfg.MaxBodySize = c.API.MaxBodySize
	cfg.RetryAttempts = c.API.RetryAttempts
	cfg.RateLimit = c.API.RateLimit
	cfg.RateBurst = c.API.RateBurst
	return cfg
}
