package metrics

import (
	"context"
	"errors"
	"time"

	"newsflix/internal/domain/entity"
)

// RecordAPIRequest records the outcome and duration of one news API call.
// Result should be one of the values documented on APIRequestsTotal.
func RecordAPIRequest(endpoint, result string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, result).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAPIResponseSize records the size of a response body read from the news API.
func RecordAPIResponseSize(endpoint string, size int) {
	APIResponseSize.WithLabelValues(endpoint).Observe(float64(size))
}

// RecordStaleResponse records a completion discarded by controller.
func RecordStaleResponse(controller string) {
	StaleResponsesTotal.WithLabelValues(controller).Inc()
}

// RecordViewError records a view entering an error state.
// The kind label is derived from the error taxonomy.
//
// Example:
//
//	if err != nil {
//	    metrics.RecordViewError("list", err)
//	}
func RecordViewError(view string, err error) {
	ViewErrorsTotal.WithLabelValues(view, ErrorKind(err)).Inc()
}

// ErrorKind maps an error to a short label: fetch, format, not_found, invalid_input,
// canceled or unknown.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, entity.ErrFetch):
		return "fetch"
	case errors.Is(err, entity.ErrFormat):
		return "format"
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrInvalidInput):
		return "invalid_input"
	case isCanceled(err):
		return "canceled"
	default:
		return "unknown"
	}
}

// RecordFilterChange records a FilterStore update.
func RecordFilterChange(state entity.FilterState) {
	FilterChangesTotal.WithLabelValues(string(state.Category), string(state.Language)).Inc()
}

// RecordBreakerState records the state a circuit breaker moved to.
// state follows the gobreaker numbering.
func RecordBreakerState(breaker string, state int) {
	BreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordCanonicalRedirect records a detail route rewritten in place.
func RecordCanonicalRedirect() {
	CanonicalRedirectsTotal.Inc()
}

// RecordFastPathRender records a detail view rendered from a navigation payload.
func RecordFastPathRender() {
	FastPathRendersTotal.Inc()
}

// RecordStorageOperation records the duration of a preference read or write.
// Operation should be "get" or "put".
func RecordStorageOperation(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	StorageOperationDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
