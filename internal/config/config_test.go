package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearReaderEnv unsets every variable Load reads.
func clearReaderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"READER_CONFIG", "NEWS_API_BASE_URL", "NEWS_API_TIMEOUT", "NEWS_API_MAX_BODY_SIZE",
		"NEWS_API_RETRY_ATTEMPTS", "NEWS_API_RATE_LIMIT", "NEWS_API_RATE_BURST",
		"READER_STORAGE", "READER_STORAGE_PATH", "METRICS_ADDR", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reader.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearReaderEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://newsflix.fr/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.RetryAttempts)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "newsflix", "preferences"), cfg.Storage.Path)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "newsflix", "reader.log"), cfg.Log.File)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearReaderEnv(t)
	path := writeFile(t, `
api:
  base_url: http://localhost:8080/api
  timeout: 3s
  rate_limit: 2.5
storage:
  driver: sqlite
metrics:
  addr: ":9091"
`)
	t.Setenv("NEWS_API_TIMEOUT", "7s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout)
	assert.InDelta(t, 2.5, cfg.API.RateLimit, 1e-9)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "reader.db", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, ":9091", cfg.Metrics.Addr)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	clearReaderEnv(t)
	t.Setenv("READER_CONFIG", writeFile(t, "storage:\n  path: /tmp/prefs\n"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/prefs", cfg.Storage.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		missing bool
	}{
		{name: "missing explicit file", missing: true},
		{name: "unknown key", content: "api:\n  base_uri: http://x\n"},
		{name: "malformed yaml", content: "api: [\n"},
		{name: "bad duration", content: "api:\n  timeout: soon\n"},
		{name: "bad driver", env: map[string]string{"READER_STORAGE": "redis"}},
		{name: "relative base url", env: map[string]string{"NEWS_API_BASE_URL": "/api"}},
		{name: "timeout too long", env: map[string]string{"NEWS_API_TIMEOUT": "10m"}},
		{name: "too many retries", env: map[string]string{"NEWS_API_RETRY_ATTEMPTS": "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearReaderEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			switch {
			case tt.missing:
				path = filepath.Join(t.TempDir(), "nope.yaml")
			case tt.content != "":
				path = writeFile(t, tt.content)
			}

			_, err := Load(path)

			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	clearReaderEnv(t)

	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default().API, cfg.API)
}

func TestConfig_ClientConfig(t *testing.T) {
	clearReaderEnv(t)
	t.Setenv("NEWS_API_RATE_BURST", "3")
	cfg, err := Load("")
	require.NoError(t, err)

	client := cfg.ClientConfig()

	assert.Equal(t, cfg.API.BaseURL, client.BaseURL)
	assert.Equal(t, 3, client.RateBurst)
	assert.NoError(t, client.Validate())
}
