package middleware

import (
	"net/http"

	"github.com/javohir-a/kutubxona/internal/api/shared"
)

// TraceID attaches a random trace ID to every request's context so log lines
// and error responses can be correlated.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		w.Header().Set("X-Trace-ID", shared.GetTraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
