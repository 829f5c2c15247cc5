package auth

import (
	"context"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

// Authenticate verifies a raw session token and rejects revoked or inactive sessions.
func (s *Service) Authenticate(ctx context.Context, raw string) (TokenClaims, error) {
	if raw == "" {
		return TokenClaims{}, domain.ErrTokenMissing()
	}

	claims, err := s.signer.VerifyAccessToken(raw)
	if err != nil {
		return TokenClaims{}, err
	}

	if claims.TokenID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// denylist outage must not lock every user out
			logger.WithCtx(ctx).Warn().Err(err).Msg("token denylist lookup failed")
		} else if revoked {
			return TokenClaims{}, domain.ErrTokenRevoked()
		}
	}

	if !claims.Active {
		return TokenClaims{}, domain.ErrAccountInactive()
	}
	return claims, nil
}
