package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_READER_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("TEST_READER_STRING", "fallback"))

	t.Setenv("TEST_READER_STRING", "value")
	assert.Equal(t, "value", GetEnvString("TEST_READER_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "unset", value: "", expected: 10},
		{name: "valid", value: "42", expected: 42},
		{name: "negative", value: "-3", expected: -3},
		{name: "invalid falls back", value: "many", expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_READER_INT", tt.value)
			assert.Equal(t, tt.expected, GetEnvInt("TEST_READER_INT", 10))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{name: "unset", value: "", expected: 5},
		{name: "valid", value: "2.5", expected: 2.5},
		{name: "surrounding spaces", value: " 0.5 ", expected: 0.5},
		{name: "invalid falls back", value: "fast", expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_READER_FLOAT", tt.value)
			assert.InDelta(t, tt.expected, GetEnvFloat("TEST_READER_FLOAT", 5), 1e-9)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "unset", value: "", expected: 10 * time.Second},
		{name: "valid", value: "1m30s", expected: 90 * time.Second},
		{name: "bare number is invalid", value: "30", expected: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_READER_DURATION", tt.value)
			assert.Equal(t, tt.expected, GetEnvDuration("TEST_READER_DURATION", 10*time.Second))
		})
	}
}
