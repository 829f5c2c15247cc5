package middleware

import (
	"net/http"

	"github.com/baechuer/helpdesk/internal/domain"
)

// RequireRole admits only callers holding role. Auth must run first.
func RequireRole(role domain.Role, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := ClaimsFromContext(r.Context())
			if !ok {
				// Auth not applied
				writeErr(w, r, domain.ErrUnauthenticated())
				return
			}
			if c.Role != role {
				writeErr(w, r, domain.ErrInsufficientRole(string(role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
