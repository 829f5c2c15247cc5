package middleware

import (
	"context"
	"net/http"

	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/infrastructure/security"
)

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (auth.TokenClaims, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth resolves the session from "Authorization: Bearer <token>" or the session cookie
// and injects the verified claims into the request context.
func Auth(authn Authenticator, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := auth.ExtractBearer(r.Header.Get("Authorization"))
			if raw == "" {
				raw = security.ReadSessionCookie(r)
			}

			claims, err := authn.Authenticate(r.Context(), raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
