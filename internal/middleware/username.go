package middleware

import (
	"net/http"
	"strings"

	"coursework_service/pkg/ctxdata"
)

const UsernameHeader = "X-Username"

// Username copies the caller identity resolved upstream into the request
// context. Requests without it pass through; the service rejects them.
func Username(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name := strings.TrimSpace(r.Header.Get(UsernameHeader)); name != "" {
			r = r.WithContext(ctxdata.WithUsername(r.Context(), name))
		}
		next.ServeHTTP(w, r)
	})
}
