package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlers() HandlerSet {
	ok := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			JSON(w, http.StatusOK, name)
		}
	}
	return HandlerSet{Chat: ok("chat"), ListPosts: ok("list"), GetPost: ok("get")}
}

func serve(h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader("{}"))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func TestRouter_Routes(t *testing.T) {
	r := NewRouter(nil, nil, RouterConfig{}, handlers())

	assert.Equal(t, "chat", dataOf(t, serve(r, http.MethodPost, "/api/chat", nil)))
	assert.Equal(t, "list", dataOf(t, serve(r, http.MethodGet, "/api/blog", nil)))
	assert.Equal(t, "get", dataOf(t, serve(r, http.MethodGet, "/api/blog/graph-rag", nil)))

	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodGet, "/api/chat", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", nil).Code)
}

func TestRouter_CommonHeaders(t *testing.T) {
	r := NewRouter(nil, nil, RouterConfig{}, handlers())

	rec := serve(r, http.MethodGet, "/health/live", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = serve(r, http.MethodGet, "/health/live", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := NewRouter(nil, nil, RouterConfig{CORSAllowedOrigins: []string{"https://daffa.dev"}}, handlers())

	rec := serve(r, http.MethodOptions, "/api/chat", map[string]string{
		"Origin":                        "https://daffa.dev",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "https://daffa.dev", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(r, http.MethodOptions, "/api/chat", map[string]string{
		"Origin":                        "https://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Readiness(t *testing.T) {
	r := NewRouter(nil, nil, RouterConfig{}, handlers())
	rec := serve(r, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "healthy", "redis": "not configured", "nats": "not configured"}, dataOf(t, rec))

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	r = NewRouter(client, nil, RouterConfig{}, handlers())
	rec = serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", dataOf(t, rec).(map[string]any)["redis"])

	mr.Close()
	rec = serve(r, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", dataOf(t, rec).(map[string]any)["status"])
}

func TestHandleError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, NewNotFoundError("post not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"post not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	HandleError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
