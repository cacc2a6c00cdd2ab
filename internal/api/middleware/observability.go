package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medisense/backend/internal/infrastructure/observability"
)

// ObservabilityMiddleware opens a server span per request and records the
// request counter and latency histogram. Spans and metrics are labelled with
// the matched mux pattern, which is only known after the handler ran.
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), "HTTP "+r.Method)
			defer span.End()

			req := r.WithContext(ctx)
			rec := newStatusRecorder(w)
			began := time.Now()
			next.ServeHTTP(rec, req)
			elapsed := time.Since(began)

			route := routeLabel(req)
			span.SetName(route)
			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rec.status),
				attribute.Int("http.response_size", rec.bytes),
			)
			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rec.status, elapsed)
		})
	}
}

// routeLabel prefers the mux pattern so session ids never become labels
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}
