package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Transport creates an OpenTelemetry client span around each HTTP round trip.
//
// The transport:
//   - Starts a client span named "<METHOD> <path>" as a child of the request context
//   - Injects the trace context into the outgoing headers (W3C Trace Context format)
//   - Records HTTP method, path and status code as span attributes
//   - Marks the span as an error on transport failure or a 5xx status
//
// Example usage:
//
//	client := &http.Client{
//	    Transport: &tracing.Transport{Base: http.DefaultTransport},
//	}
type Transport struct {
	Base           http.RoundTripper
	TracerProvider trace.TracerProvider
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := TracerFrom(t.TracerProvider).Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	out := req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.URL.Path),
	)

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
