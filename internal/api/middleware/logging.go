package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisense/backend/internal/infrastructure/observability"
)

// LoggingMiddleware writes one access log line per request. Server errors
// log at error level and client errors at warn.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		logger := observability.LoggerFromContext(r.Context())
		level := zerolog.InfoLevel
		if rec.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		} else if rec.status >= http.StatusBadRequest {
			level = zerolog.WarnLevel
		}

		entry := logger.WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(began))
		if id := r.Header.Get(SessionHeader); id != "" {
			entry = entry.Str("session_id", id)
		}
		if cache := w.Header().Get("X-Cache"); cache != "" {
			entry = entry.Str("cache", cache)
		}
		entry.Msg("HTTP request")
	})
}
