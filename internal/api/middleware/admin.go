package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/medisense/backend/pkg/errors"
)

// SessionHeader carries the session id on admin requests
const SessionHeader = "X-Session-ID"

// AdminChecker confirms a session is an authenticated admin session
type AdminChecker interface {
	RequireAdmin(ctx context.Context, sessionID string) error
}

// RequireAdmin rejects requests whose X-Session-ID does not name an admin session
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := checker.RequireAdmin(r.Context(), r.Header.Get(SessionHeader))
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			status, message := http.StatusInternalServerError, "internal server error"
			if apperrors.Is(err, apperrors.ErrorTypeAuthFailure) {
				status, message = http.StatusUnauthorized, "admin session required"
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
		})
	}
}
