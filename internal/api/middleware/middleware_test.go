package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/media-confidence/aifaq/internal/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func TestRequestID_Generates(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagates(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-123", captured)
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestAccessLog_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var ctxLoggerUsed bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		ctxLoggerUsed = true
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})
	handler := RequestID(AccessLog(logger)(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/faq/x", nil)
	req.Header.Set("X-Request-ID", "req-9")
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ctxLoggerUsed)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var inside map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &inside))
	assert.Equal(t, "req-9", inside["request_id"])

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/faq/x", entry["path"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, float64(7), entry["bytes"])
	assert.Equal(t, "203.0.113.5", entry["remote_addr"])
	assert.Equal(t, "req-9", entry["request_id"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestAdminAuth(t *testing.T) {
	handler := AdminAuth("admin", "secret")(http.HandlerFunc(okHandler))

	t.Run("missing credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), `realm="Admin Area"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.SetBasicAuth("admin", "nope")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.SetBasicAuth("admin", "secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMaxBodyBytes(t *testing.T) {
	handler := MaxBodyBytes(4)(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"request body too large"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaxBodyBytes_ChunkedBodyIsTooLarge(t *testing.T) {
	decode := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if api.DecodeJSON(w, r, &body) {
			w.WriteHeader(http.StatusOK)
		}
	})
	handler := MaxBodyBytes(16)(decode)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"this body is longer than sixteen bytes"}`))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"a":"b"}`))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaxBodyBytes_Disabled(t *testing.T) {
	w := httptest.NewRecorder()
	MaxBodyBytes(0)(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("any size")))
	assert.Equal(t, http.StatusOK, w.Code)
}

type MockAllower struct {
	mock.Mock
}

func (m *MockAllower) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func TestRateLimit(t *testing.T) {
	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		return req
	}

	t.Run("allowed", func(t *testing.T) {
		limiter := new(MockAllower)
		limiter.On("Allow", mock.Anything, "192.0.2.1").Return(true, nil)

		w := httptest.NewRecorder()
		RateLimit(limiter)(http.HandlerFunc(okHandler)).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied", func(t *testing.T) {
		limiter := new(MockAllower)
		limiter.On("Allow", mock.Anything, "192.0.2.1").Return(false, nil)

		w := httptest.NewRecorder()
		RateLimit(limiter)(http.HandlerFunc(okHandler)).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"success":false,"error":"too many requests"}`, w.Body.String())
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		limiter := new(MockAllower)
		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

		w := httptest.NewRecorder()
		RateLimit(limiter)(http.HandlerFunc(okHandler)).ServeHTTP(w, newReq())

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type budgetAllower struct {
	budget int
	hits   map[string]int
}

func (b *budgetAllower) Allow(ctx context.Context, key string) (bool, error) {
	b.hits[key]++
	return b.hits[key] <= b.budget, nil
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	limiter := &budgetAllower{budget: 1, hits: map[string]int{}}
	handler := RateLimit(limiter)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	assert.Equal(t, map[string]int{"192.0.2.1": 5}, limiter.hits)
}

func TestSentryMiddleware_PassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	SentryMiddleware(http.HandlerFunc(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
