package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/infrastructure/observability"
)

// CacheRoute caches GET responses under a path prefix for TTL
type CacheRoute struct {
	Prefix string
	TTL    time.Duration
}

// DefaultCacheRoutes covers the reference data, which never changes at runtime
var DefaultCacheRoutes = []CacheRoute{
	{Prefix: "/api/catalog/", TTL: time.Hour},
	{Prefix: "/api/providers/rank", TTL: 10 * time.Minute},
}

// cachedResponse is what gets written to the cache provider
type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CacheMiddleware serves repeat GETs of reference data from the shared
// cache. With Redis enabled every replica shares the entries.
type CacheMiddleware struct {
	cache  providers.CacheProvider
	routes []CacheRoute
}

// NewCacheMiddleware creates a cache middleware for routes. Routes are
// matched in order, first prefix wins.
func NewCacheMiddleware(cache providers.CacheProvider, routes []CacheRoute) *CacheMiddleware {
	return &CacheMiddleware{cache: cache, routes: routes}
}

func (m *CacheMiddleware) ttlFor(path string) (time.Duration, bool) {
	for _, route := range m.routes {
		if strings.HasPrefix(path, route.Prefix) {
			return route.TTL, true
		}
	}
	return 0, false
}

// responseKey hashes path and normalized query so keys stay short
func responseKey(r *http.Request) string {
	raw := r.URL.Path
	if q := r.URL.Query(); len(q) > 0 {
		raw += "?" + q.Encode()
	}
	sum := sha256.Sum256([]byte(raw))
	return "http:" + hex.EncodeToString(sum[:])
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cache == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		ttl, ok := m.ttlFor(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := responseKey(r)
		if hit, ok := m.lookup(r, key); ok {
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", hit.ContentType)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(hit.Body)
			return
		}

		w.Header().Set("X-Cache", "MISS")
		tee := &teeWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(tee, r)
		if tee.status != http.StatusOK || tee.body.Len() == 0 {
			return
		}

		entry, err := json.Marshal(cachedResponse{
			ContentType: w.Header().Get("Content-Type"),
			Body:        tee.body.Bytes(),
		})
		if err == nil {
			err = m.cache.Set(ctx, key, entry, ttl)
		}
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("path", r.URL.Path).Msg("Failed to cache response")
		}
	})
}

func (m *CacheMiddleware) lookup(r *http.Request, key string) (cachedResponse, bool) {
	var hit cachedResponse
	raw, err := m.cache.Get(r.Context(), key)
	if err != nil {
		return hit, false
	}
	if err := json.Unmarshal(raw, &hit); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Discarding unreadable cache entry")
		return hit, false
	}
	return hit, true
}

// teeWriter copies the body it forwards so a miss can be stored
type teeWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (t *teeWriter) WriteHeader(code int) {
	t.status = code
	t.ResponseWriter.WriteHeader(code)
}

func (t *teeWriter) Write(p []byte) (int, error) {
	t.body.Write(p)
	return t.ResponseWriter.Write(p)
}
