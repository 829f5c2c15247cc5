package auth

import (
	"context"

	"github.com/baechuer/helpdesk/internal/domain"
)

func (s *Service) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if !actor.Authenticated() {
		return domain.User{}, domain.ErrUnauthenticated()
	}
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}
