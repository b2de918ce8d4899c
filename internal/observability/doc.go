// Package observability groups the reader's logging, metrics, tracing and
// request correlation helpers.
//
// Subpackages:
//   - logging: slog constructors (JSON file logger for the terminal UI, text logger for plain commands)
//   - metrics: Prometheus collectors for API calls, stale responses, view errors and storage
//   - tracing: OpenTelemetry tracer lookup and an HTTP client transport that opens client spans
//   - requestid: X-Request-ID generation and propagation on outgoing requests
//
// Example usage:
//
//	import (
//	    "newsflix/internal/observability/logging"
//	    "newsflix/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(os.Stderr, logging.Text)
//	    logger.Info("reader started")
//
//	    metrics.RecordCanonicalRedirect()
//	}
package observability
