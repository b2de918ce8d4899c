package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the scope of every span the reader starts.
const InstrumentationName = "newsflix"

// TracerFrom returns the reader's tracer from tp. A nil tp resolves the
// global provider at call time, so one installed later is still honored.
func TracerFrom(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}
