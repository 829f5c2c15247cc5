package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

// bcrypt only looks at the first 72 bytes.
const maxPasswordBytes = 72

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	pub    events.Publisher
	clock  Clock
}

func NewService(users UserRepo, hasher PasswordHasher, pub events.Publisher, clock Clock) *Service {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Service{users: users, hasher: hasher, pub: pub, clock: clock}
}

type RegisterCmd struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates an active account. The stored email is normalized and must be unique.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (domain.User, error) {
	name := strings.TrimSpace(cmd.Name)
	email := domain.NormalizeEmail(cmd.Email)
	role := strings.TrimSpace(cmd.Role)

	switch {
	case name == "":
		return domain.User{}, domain.ErrMissingField("name")
	case email == "":
		return domain.User{}, domain.ErrMissingField("email")
	case cmd.Password == "":
		return domain.User{}, domain.ErrMissingField("password")
	case role == "":
		return domain.User{}, domain.ErrMissingField("role")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidField("email", "invalid format")
	}
	if len(cmd.Password) > maxPasswordBytes {
		return domain.User{}, domain.ErrInvalidField("password", "must be at most 72 bytes")
	}
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.clock.Now().UTC()
	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.Role(role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.User{}, err
	}

	lg := logger.WithCtx(ctx)
	lg.Info().Str("user_id", created.ID).Str("role", role).Msg("user registered")

	env := events.NewEnvelope(ctx, now, events.UserPayload{UserID: created.ID, Role: role})
	if err := s.pub.PublishEvent(ctx, events.UserRegistered, env); err != nil {
		lg.Warn().Err(err).Str("user_id", created.ID).Msg("publish user.registered failed")
	}

	created.PasswordHash = ""
	return created, nil
}

// List returns every account without password hashes. Agents only.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated()
	}
	if !actor.IsAgent() {
		return nil, domain.ErrInsufficientRole(string(domain.RoleAgent))
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
