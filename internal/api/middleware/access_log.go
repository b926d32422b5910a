package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/logger"
	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// AccessLog logs one line per request and puts a request-scoped logger in the
// context for handlers.
func AccessLog(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			reqLogger := base
			if requestID := GetRequestID(r.Context()); requestID != "" {
				reqLogger = base.With(zap.String("request_id", requestID))
			}

			next.ServeHTTP(rec, r.WithContext(logger.ContextWithLogger(r.Context(), reqLogger)))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", rec.bytes),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("remote_addr", clientIP(r)),
				zap.String("user_agent", r.UserAgent()),
			}
			switch {
			case status >= 500:
				reqLogger.Error("http request", fields...)
			case status >= 400:
				reqLogger.Warn("http request", fields...)
			default:
				reqLogger.Info("http request", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
