// Package tracing integrates OpenTelemetry distributed tracing.
//
// Middleware opens a server span per HTTP request, honoring W3C Trace
// Context from upstream callers and echoing the trace ID on the
// X-Trace-Id response header. GetTracer hands out the application
// tracer for manual spans around expensive work.
//
// Example usage:
//
//	mux := http.NewServeMux()
//	handler := tracing.Middleware(mux)
//
//	func rebuildFamilyTree(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "rebuild-family-tree")
//	    defer span.End()
//	    // ...
//	}
package tracing
