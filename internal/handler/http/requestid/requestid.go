// Package requestid assigns a unique ID to every HTTP request so log
// lines from one request can be correlated across handlers.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

// RequestIDHeader is the HTTP header used to carry the request ID in
// both directions.
const RequestIDHeader = "X-Request-ID"

var ctxRequestID contextKey

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// FromContext returns the request ID stored in the context, or an
// empty string when none was set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// Middleware attaches a request ID to every request. A client-supplied
// X-Request-ID is respected so upstream proxies can thread their own
// IDs through; otherwise a fresh UUID v4 is generated. The ID is echoed
// on the response header and stored in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		// クライアント側でも追跡できるようレスポンスに載せる
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
