package middleware

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
)

// cachePolicy is the Cache-Control value for a path prefix
type cachePolicy struct {
	prefix string
	value  string
}

// staticPolicies cover reference data, which only changes with a deploy.
// Anything else belongs to a session or the admin and is never shared.
var staticPolicies = []cachePolicy{
	{prefix: "/api/catalog/", value: "public, max-age=3600, must-revalidate"},
	{prefix: "/api/providers", value: "public, max-age=600, must-revalidate"},
}

const privatePolicy = "private, no-cache, must-revalidate"

func policyFor(path string) (string, bool) {
	for _, p := range staticPolicies {
		if strings.HasPrefix(path, p.prefix) {
			return p.value, true
		}
	}
	return privatePolicy, false
}

// gzipPool reuses compressors across responses
var gzipPool = sync.Pool{
	New: func() interface{} {
		gz, _ := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
		return gz
	},
}

// bufferedResponse holds a static response until it is complete, so the
// ETag covers the uncompressed body
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func etagOf(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// ResponseOptimization sets Cache-Control on every response. Successful
// GETs of reference data additionally get an ETag, answer If-None-Match
// with 304 and are gzipped when the client accepts it. Session, admin and
// streaming responses pass through unbuffered.
func ResponseOptimization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		policy, static := policyFor(r.URL.Path)
		w.Header().Set("Cache-Control", policy)
		if !static || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedResponse{header: w.Header()}
		next.ServeHTTP(buf, r)
		if buf.status == 0 {
			buf.status = http.StatusOK
		}
		if buf.status != http.StatusOK {
			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
			return
		}

		etag := etagOf(buf.body.Bytes())
		w.Header().Set("ETag", etag)
		w.Header().Add("Vary", "Accept-Encoding")
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(buf.body.Bytes())
			return
		}

		gz := gzipPool.Get().(*gzip.Writer)
		defer gzipPool.Put(gz)
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.WriteHeader(http.StatusOK)
		gz.Reset(w)
		_, _ = gz.Write(buf.body.Bytes())
		_ = gz.Close()
	})
}
