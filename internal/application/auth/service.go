package auth

import (
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

const defaultSessionTTL = 24 * time.Hour

type Service struct {
	users    UserReader
	hasher   PasswordHasher
	signer   TokenSigner
	denylist TokenDenylist
	clock    Clock

	sessionTTL time.Duration
}

func NewService(users UserReader, hasher PasswordHasher, signer TokenSigner, denylist TokenDenylist, clock Clock, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		denylist:   denylist,
		clock:      clock,
		sessionTTL: sessionTTL,
	}
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	User      domain.User
}
