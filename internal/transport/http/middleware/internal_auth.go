package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/baechuer/helpdesk/internal/domain"
)

const HeaderInternalSecret = "X-Internal-Secret"

// InternalSecret guards service-to-service endpoints. An empty secret leaves the route open.
func InternalSecret(secret string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(HeaderInternalSecret)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				writeErr(w, r, domain.ErrUnauthenticated())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
