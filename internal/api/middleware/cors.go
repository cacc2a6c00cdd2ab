package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// corsExposedHeaders lets browser clients read cache status and the export filename
var corsExposedHeaders = strings.Join([]string{"X-Cache", "ETag", "Content-Disposition"}, ", ")

// CORS answers preflight requests and tags responses for the allowed
// origins. A "*" entry admits every origin without echoing it back.
type CORS struct {
	origins  []string
	wildcard bool
}

// NewCORS creates a CORS policy for origins
func NewCORS(origins []string) *CORS {
	return &CORS{
		origins:  origins,
		wildcard: slices.Contains(origins, "*"),
	}
}

func (c *CORS) allowOrigin(w http.ResponseWriter, origin string) {
	switch {
	case origin == "":
	case c.wildcard:
		w.Header().Set("Access-Control-Allow-Origin", "*")
	case slices.Contains(c.origins, origin):
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
}

// Middleware wraps next with the policy
func (c *CORS) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.allowOrigin(w, r.Header.Get("Origin"))
		w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
