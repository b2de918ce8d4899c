package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout)
}

func TestGetConnectionConfigFromEnv_MaxOpenConns(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{name: "valid value", envValue: "8", expected: 8},
		{name: "invalid value - non-numeric", envValue: "invalid", expected: 4},
		{name: "invalid value - zero", envValue: "0", expected: 4},
		{name: "invalid value - negative", envValue: "-10", expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_MAX_OPEN_CONNS", tt.envValue)

			cfg := getConnectionConfigFromEnv()
			assert.Equal(t, tt.expected, cfg.MaxOpenConns)
		})
	}
}

func TestGetConnectionConfigFromEnv_Durations(t *testing.T) {
	t.Setenv("DB_CONN_MAX_LIFETIME", "10m")
	t.Setenv("DB_BUSY_TIMEOUT", "not-a-duration")

	cfg := getConnectionConfigFromEnv()

	assert.Equal(t, 10*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout)
}

func TestOpen_Memory(t *testing.T) {
	conn, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
}

func TestOpen_FileUsesWAL(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "reader.db")

	// Act
	conn, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	// Assert
	var mode string
	require.NoError(t, conn.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_UnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "reader.db")

	conn, err := Open(context.Background(), path)

	assert.Error(t, err)
	assert.Nil(t, conn)
}
