// Package tracing provides OpenTelemetry tracing integration for the reader.
//
// Every news API operation opens a client span, and Transport opens a child
// span per HTTP round trip and injects W3C trace context into the request
// headers so a backend that participates in tracing can join the trace.
//
// No exporter is configured by default; spans are dropped unless the
// embedding program installs a TracerProvider.
//
// Example usage:
//
//	client := &http.Client{Transport: &tracing.Transport{Base: http.DefaultTransport}}
//
//	func fetch(ctx context.Context) {
//	    ctx, span := tracing.TracerFrom(nil).Start(ctx, "newsapi.list")
//	    defer span.End()
//	    // ... call the API ...
//	}
package tracing
