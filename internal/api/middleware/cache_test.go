package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingHandler(hits *int, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func doGet(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestResponseCache(t *testing.T) {
	t.Parallel()

	t.Run("second identical GET is served from cache", func(t *testing.T) {
		t.Parallel()

		hits := 0
		cache := NewResponseCache(time.Minute)
		handler := cache.Middleware(countingHandler(&hits, http.StatusOK, `{"count":0}`))

		first := doGet(handler, "/authors/")
		require.Equal(t, http.StatusOK, first.Code)
		assert.Empty(t, first.Header().Get("X-Cache"))

		second := doGet(handler, "/authors/")
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 1, hits)
	})

	t.Run("query string is part of the key", func(t *testing.T) {
		t.Parallel()

		hits := 0
		cache := NewResponseCache(time.Minute)
		handler := cache.Middleware(countingHandler(&hits, http.StatusOK, "page"))

		doGet(handler, "/authors/?page=1")
		doGet(handler, "/authors/?page=2")
		assert.Equal(t, 2, hits)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		t.Parallel()

		hits := 0
		cache := NewResponseCache(time.Minute)
		current := time.Now()
		cache.now = func() time.Time { return current }
		handler := cache.Middleware(countingHandler(&hits, http.StatusOK, "body"))

		doGet(handler, "/books/")
		current = current.Add(2 * time.Minute)
		doGet(handler, "/books/")
		assert.Equal(t, 2, hits)
	})

	t.Run("non-200 responses are not cached", func(t *testing.T) {
		t.Parallel()

		hits := 0
		cache := NewResponseCache(time.Minute)
		handler := cache.Middleware(countingHandler(&hits, http.StatusNotFound, "missing"))

		doGet(handler, "/authors/?page=99")
		w := doGet(handler, "/authors/?page=99")
		assert.Equal(t, 2, hits)
		assert.Empty(t, w.Header().Get("X-Cache"))
	})

	t.Run("non-GET requests pass through", func(t *testing.T) {
		t.Parallel()

		hits := 0
		cache := NewResponseCache(time.Minute)
		handler := cache.Middleware(countingHandler(&hits, http.StatusOK, "created"))

		req := httptest.NewRequest(http.MethodPost, "/authors/create/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, 2, hits)

		// The POSTs must not have primed the GET cache either.
		doGet(handler, "/authors/create/")
		assert.Equal(t, 3, hits)
	})
}
