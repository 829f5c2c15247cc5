package user

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Clock interface {
	Now() time.Time
}
