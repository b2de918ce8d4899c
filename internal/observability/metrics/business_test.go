package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"newsflix/internal/domain/entity"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "fetch", err: &entity.FetchError{Op: "list", StatusCode: 500}, expected: "fetch"},
		{name: "wrapped format", err: fmt.Errorf("resolve: %w", &entity.FormatError{Op: "get"}), expected: "format"},
		{name: "not found", err: &entity.NotFoundError{}, expected: "not_found"},
		{name: "validation", err: &entity.ValidationError{Field: "category"}, expected: "invalid_input"},
		{name: "canceled", err: context.Canceled, expected: "canceled"},
		{name: "deadline", err: fmt.Errorf("x: %w", context.DeadlineExceeded), expected: "canceled"},
		{name: "other", err: errors.New("boom"), expected: "unknown"},
		{name: "nil", err: nil, expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorKind(tt.err))
		})
	}
}

func TestRecordViewError(t *testing.T) {
	// Arrange
	before := testutil.ToFloat64(ViewErrorsTotal.WithLabelValues("search", "fetch"))

	// Act
	RecordViewError("search", &entity.FetchError{Op: "search", StatusCode: 502})

	// Assert
	after := testutil.ToFloat64(ViewErrorsTotal.WithLabelValues("search", "fetch"))
	assert.Equal(t, before+1, after)
}

func TestRecordStaleResponse(t *testing.T) {
	before := testutil.ToFloat64(StaleResponsesTotal.WithLabelValues("list"))

	RecordStaleResponse("list")
	RecordStaleResponse("list")

	assert.Equal(t, before+2, testutil.ToFloat64(StaleResponsesTotal.WithLabelValues("list")))
}

func TestRecordFilterChange(t *testing.T) {
	state := entity.FilterState{Category: entity.CategorySports, Language: entity.LanguageEnUS}
	before := testutil.ToFloat64(FilterChangesTotal.WithLabelValues("Sports", "en-us"))

	RecordFilterChange(state)

	assert.Equal(t, before+1, testutil.ToFloat64(FilterChangesTotal.WithLabelValues("Sports", "en-us")))
}

func TestRecordCounters_NoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordAPIRequest("detail", "success", 120*time.Millisecond)
		RecordAPIResponseSize("detail", 4096)
		RecordCanonicalRedirect()
		RecordFastPathRender()
		RecordStorageOperation("put", time.Millisecond, nil)
		RecordStorageOperation("get", time.Millisecond, errors.New("locked"))
	})
}
