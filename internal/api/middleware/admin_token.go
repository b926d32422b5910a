package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cloo-solutions/lexsearch/internal/api"
)

// AdminToken requires "Authorization: Bearer <token>" on wrapped routes. An
// empty token leaves the routes open.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Error(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing authorization header")
				return
			}

			presented, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				api.Error(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid authorization format")
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				api.Error(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
