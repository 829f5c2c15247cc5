package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/metrics"
)

// Login checks credentials and issues a session token.
// Unknown email and wrong password produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.RecordLogin("invalid")
		return Session{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			metrics.RecordLogin("invalid")
			return Session{}, domain.ErrInvalidCredentials()
		}
		return Session{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		metrics.RecordLogin("invalid")
		return Session{}, domain.ErrInvalidCredentials()
	}

	if !u.IsActive {
		metrics.RecordLogin("inactive")
		return Session{}, domain.ErrAccountInactive()
	}

	now := s.clock.Now().UTC()
	claims := TokenClaims{
		UserID:    u.ID,
		Role:      u.Role,
		Active:    u.IsActive,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	token, err := s.signer.SignAccessToken(claims)
	if err != nil {
		return Session{}, err
	}

	metrics.RecordLogin("success")
	logger.WithCtx(ctx).Info().
		Str("user_id", u.ID).
		Str("role", string(u.Role)).
		Msg("login succeeded")

	u.PasswordHash = ""
	return Session{
		Token:     token,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt,
		User:      u,
	}, nil
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearer(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
