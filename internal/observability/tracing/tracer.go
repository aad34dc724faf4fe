package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fork-kitchen")

// GetTracer returns the application tracer for creating manual spans.
func GetTracer() trace.Tracer {
	return tracer
}
