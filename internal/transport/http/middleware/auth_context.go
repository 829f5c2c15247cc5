package middleware

import (
	"context"

	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/domain"
)

type ctxKey string

const ctxClaims ctxKey = "session_claims"

func WithClaims(ctx context.Context, c auth.TokenClaims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

func ClaimsFromContext(ctx context.Context) (auth.TokenClaims, bool) {
	c, ok := ctx.Value(ctxClaims).(auth.TokenClaims)
	return c, ok && c.UserID != ""
}

// ActorFromContext returns the zero Actor when no session was attached.
func ActorFromContext(ctx context.Context) domain.Actor {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return domain.Actor{}
	}
	return c.Actor()
}
