package middleware

import (
	"net/http"

	"github.com/cloo-solutions/lexsearch/internal/api"
)

// MaxBodyBytes limits request body size. Imports carry whole datasets, so the
// limit is configurable.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > limit {
				api.Error(w, http.StatusRequestEntityTooLarge, api.CodeTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
