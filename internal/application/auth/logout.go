package auth

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

// Logout revokes the session token until it would have expired.
func (s *Service) Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated()
	}
	if tokenID == "" {
		return domain.ErrTokenInvalid()
	}

	ttl := expiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenID, ttl); err != nil {
		return domain.ErrInternal(err)
	}

	logger.WithCtx(ctx).Info().Str("user_id", actor.ID).Msg("logout")
	return nil
}
