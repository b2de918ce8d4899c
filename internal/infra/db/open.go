package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"newsflix/pkg/config"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
// SQLite serializes writers, so a small pool is enough for one reader process.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 1 * time.Hour,
		BusyTimeout:     5 * time.Second,
	}
}

// Open opens the SQLite database at path, applies pool settings and pragmas,
// and verifies the connection.
//
// Parameters:
//   - ctx: Bounds the initial ping
//   - path: File path, or MemoryPath for a throwaway database
//
// Returns:
//   - *sql.DB: Ready-to-use handle; the caller must Close it
//   - error: Open, ping or pragma failure
//
// Example:
//
//	conn, err := db.Open(ctx, "/home/me/.local/share/newsflix/reader.db")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
func Open(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cfg := getConnectionConfigFromEnv()
	if path == MemoryPath {
		// Each connection gets its own in-memory database, so pin exactly one
		// and never recycle it.
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	slog.Debug("database connection established",
		slog.String("path", path),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Duration("busy_timeout", cfg.BusyTimeout))

	return conn, nil
}

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Falls back to default values if not set or invalid.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := config.GetEnvDuration("DB_BUSY_TIMEOUT", cfg.BusyTimeout); v > 0 {
		cfg.BusyTimeout = v
	}

	return cfg
}
