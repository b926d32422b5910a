package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloo-solutions/lexsearch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", captured)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	var ctxLogger *zap.Logger
	handler := RequestID(AccessLog(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not_found"}`))
	})))

	req := httptest.NewRequest(http.MethodGet, "/cases/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, ctxLogger)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/cases/abc", fields["path"])
	assert.Equal(t, int64(404), fields["status"])
	assert.Equal(t, int64(len(`{"error":"not_found"}`)), fields["bytes"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "10.0.0.1", fields["remote_addr"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", clientIP(req))
}

func TestMaxBodyBytes(t *testing.T) {
	handler := MaxBodyBytes(10)(okHandler(t))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 11))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "request_too_large")
}

func TestAdminToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"open when unset", "", "", http.StatusOK, ""},
		{"valid token", "s3cret", "Bearer s3cret", http.StatusOK, ""},
		{"missing header", "s3cret", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "s3cret", "Basic s3cret", http.StatusUnauthorized, "invalid authorization format"},
		{"wrong token", "s3cret", "Bearer nope", http.StatusUnauthorized, "invalid admin token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AdminToken(tt.token)(okHandler(t))

			req := httptest.NewRequest(http.MethodPost, "/admin/import-dataset", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSentryMiddleware_WithoutClient(t *testing.T) {
	handler := SentryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
