// Package config reads typed settings from environment variables.
//
// A variable that is unset or empty yields the fallback. A variable that is
// set but does not parse also yields the fallback, with a warning naming it,
// so a typo in the environment never stops the reader from starting.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable's value, or fallback when it is unset or empty.
func GetEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt parses a base-10 integer, e.g. NEWS_API_RATE_BURST=10.
func GetEnvInt(key string, fallback int) int {
	return lookup(key, fallback, strconv.Atoi)
}

// GetEnvFloat parses a float, e.g. NEWS_API_RATE_LIMIT=2.5.
func GetEnvFloat(key string, fallback float64) float64 {
	return lookup(key, fallback, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvDuration parses a Go duration such as "30s" or "1m30s".
// A bare number has no unit and is rejected.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	return lookup(key, fallback, time.ParseDuration)
}

func lookup[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring invalid environment variable",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("fallback", fallback),
			slog.Any("error", err))
		return fallback
	}
	return v
}
