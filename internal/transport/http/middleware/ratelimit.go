package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/baechuer/helpdesk/internal/domain"
)

// RateLimitByIP is a fixed-window limiter keyed by client IP.
// scope names the limiter in the 429 body so clients can tell the login limit from the global one.
func RateLimitByIP(scope string, limit int, window time.Duration, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeErr(w, r, domain.ErrRateLimited(scope))
		}),
	)
}
