package auth

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

// UserReader is the slice of the user store the auth flows need.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type PasswordHasher interface {
	Compare(hash string, password string) error // nil if match
}

// TokenClaims is the session payload carried by the access token.
type TokenClaims struct {
	UserID    string
	Role      domain.Role
	Active    bool
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Actor converts verified claims into the request-scoped caller.
func (c TokenClaims) Actor() domain.Actor {
	return domain.Actor{ID: c.UserID, Role: c.Role, IsActive: c.Active}
}

type TokenSigner interface {
	SignAccessToken(c TokenClaims) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

// TokenDenylist remembers revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}
