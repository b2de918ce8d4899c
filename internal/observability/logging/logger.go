package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"newsflix/internal/observability/requestid"
	"newsflix/pkg/config"
)

// Format selects the handler New builds.
type Format int

const (
	JSON Format = iota
	Text
)

// New returns a logger writing to w at the level named by LOG_LEVEL
// (debug, info, warn or error; info when unset or unknown).
// Debug output carries source locations.
func New(w io.Writer, f Format) *slog.Logger {
	level := Level()
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	if f == Text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Level parses LOG_LEVEL.
func Level() slog.Level {
	switch strings.ToLower(config.GetEnvString("LOG_LEVEL", "info")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile appends JSON log lines to path, creating its directory (0700)
// and the file (0600) when missing. Close the returned closer on exit.
func OpenFile(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	// #nosec G304 -- path comes from the reader's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, JSON), f, nil
}

// WithRequestID adds a request_id attribute when ctx carries one.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := requestid.FromContext(ctx); id != "" {
		return logger.With(slog.String("request_id", id))
	}
	return logger
}
