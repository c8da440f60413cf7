package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

// DefaultCacheTTL mirrors the per-view cache duration the catalog's read
// endpoints use.
const DefaultCacheTTL = 5 * time.Minute

type cachedResponse struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for GET responses, keyed by
// request URI. Writes to a resource do not invalidate entries; stale reads
// within the TTL window are accepted.
type ResponseCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedResponse
	now     func() time.Time
}

// NewResponseCache creates a ResponseCache with the given TTL. A zero or
// negative TTL falls back to DefaultCacheTTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResponseCache{
		ttl:     ttl,
		entries: make(map[string]cachedResponse),
		now:     time.Now,
	}
}

// Middleware serves cached bodies for GET requests and records successful
// responses for later hits. Non-GET requests and non-200 responses pass
// through uncached.
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if entry, ok := c.get(key); ok {
			for k, vs := range entry.header {
				for _, v := range vs {
					w.Header().Add(k, v)
				}
			}
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(entry.status)
			_, _ = w.Write(entry.body)
			return
		}

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			c.put(key, cachedResponse{
				status:    rec.status,
				header:    w.Header().Clone(),
				body:      rec.buf.Bytes(),
				expiresAt: c.now().Add(c.ttl),
			})
		}
	})
}

func (c *ResponseCache) get(key string) (cachedResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return cachedResponse{}, false
	}
	return entry, true
}

func (c *ResponseCache) put(key string, entry cachedResponse) {
	c.mu.Lock()
	// Evict anything already expired so the map does not grow unbounded.
	for k, e := range c.entries {
		if c.now().After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry
	c.mu.Unlock()
}

// responseRecorder tees the response body so it can be cached after the
// handler has written it.
type responseRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
