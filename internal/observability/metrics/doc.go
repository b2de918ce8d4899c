// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all reader metrics including:
//   - News API call metrics (count by result, duration, response size)
//   - View state metrics (stale responses, error states, canonical redirects)
//   - Preference storage metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint when METRICS_ADDR is set.
//
// Example usage:
//
//	import "newsflix/internal/observability/metrics"
//
//	func fetch(ctx context.Context) {
//	    start := time.Now()
//	    // ... call the API ...
//	    metrics.RecordAPIRequest("list", "success", time.Since(start))
//	}
package metrics
