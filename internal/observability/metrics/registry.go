// Package metrics provides centralized Prometheus metrics for the reader.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// News API metrics track calls to the remote article endpoints
var (
	// APIRequestsTotal counts news API calls by endpoint and result
	// (success, http_error, transport_error, format_error, circuit_open, rate_limited)
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_requests_total",
			Help: "Total number of news API requests",
		},
		[]string{"endpoint", "result"},
	)

	// APIRequestDuration measures news API call duration in seconds
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsapi_request_duration_seconds",
			Help:    "News API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// APIResponseSize measures news API response body size in bytes
	APIResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsapi_response_size_bytes",
			Help:    "News API response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"endpoint"},
	)

	// BreakerState is the circuit breaker state by name
	// (0 = closed, 1 = half-open, 2 = open)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newsapi_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"breaker"},
	)
)

// Reader metrics track view state transitions
var (
	// StaleResponsesTotal counts completions dropped because a newer request superseded them
	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reader_stale_responses_total",
			Help: "Total number of superseded responses discarded by a controller",
		},
		[]string{"controller"},
	)

	// ViewErrorsTotal counts error states entered by a view, by error kind
	ViewErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reader_view_errors_total",
			Help: "Total number of error states entered by a view",
		},
		[]string{"view", "kind"},
	)

	// FilterChangesTotal counts FilterStore updates by resulting state
	FilterChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reader_filter_changes_total",
			Help: "Total number of filter updates",
		},
		[]string{"category", "language"},
	)

	// CanonicalRedirectsTotal counts in-place URL canonicalizations after a detail fetch
	CanonicalRedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reader_canonical_redirects_total",
			Help: "Total number of detail routes rewritten to their canonical slug",
		},
	)

	// FastPathRendersTotal counts detail views rendered from a navigation payload
	FastPathRendersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reader_fast_path_renders_total",
			Help: "Total number of detail views rendered before the detail fetch settled",
		},
	)
)

// Storage metrics track preference persistence
var (
	// StorageOperationDuration measures preference storage operations in seconds
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reader_storage_operation_duration_seconds",
			Help:    "Preference storage operation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation", "result"},
	)
)
