package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/helpdesk/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRepo struct {
	users []domain.User
}

func (r *fakeRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type prefixHasher struct{ err error }

func (h prefixHasher) Hash(pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hash:" + pw, nil
}

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, key string, payload any) error {
	p.keys = append(p.keys, key)
	return p.err
}

func newTestService() (*Service, *fakeRepo, *recordingPublisher) {
	repo := &fakeRepo{}
	pub := &recordingPublisher{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewService(repo, prefixHasher{}, pub, fixedClock{now}), repo, pub
}

func TestRegister(t *testing.T) {
	t.Run("success_hashes_and_normalizes", func(t *testing.T) {
		svc, repo, pub := newTestService()

		u, err := svc.Register(context.Background(), RegisterCmd{
			Name: " Ana ", Email: " Ana@Example.COM", Password: "secret", Role: "client",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.True(t, u.IsActive)
		assert.Empty(t, u.PasswordHash)

		require.Len(t, repo.users, 1)
		assert.Equal(t, "hash:secret", repo.users[0].PasswordHash)
		assert.Equal(t, []string{"user.registered"}, pub.keys)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _, _ := newTestService()

		cases := []struct {
			name string
			cmd  RegisterCmd
			code string
		}{
			{"missing_name", RegisterCmd{Email: "a@b.c", Password: "p", Role: "client"}, "missing_field"},
			{"missing_email", RegisterCmd{Name: "A", Password: "p", Role: "client"}, "missing_field"},
			{"missing_password", RegisterCmd{Name: "A", Email: "a@b.c", Role: "client"}, "missing_field"},
			{"missing_role", RegisterCmd{Name: "A", Email: "a@b.c", Password: "p"}, "missing_field"},
			{"bad_email", RegisterCmd{Name: "A", Email: "abc", Password: "p", Role: "client"}, "invalid_field"},
			{"long_password", RegisterCmd{Name: "A", Email: "a@b.c", Password: strings.Repeat("x", 73), Role: "client"}, "invalid_field"},
			{"bad_role", RegisterCmd{Name: "A", Email: "a@b.c", Password: "p", Role: "admin"}, "invalid_role"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(context.Background(), tc.cmd)
				assert.True(t, domain.Is(err, tc.code), "got %v", err)
			})
		}
	})

	t.Run("duplicate_email_conflict", func(t *testing.T) {
		svc, _, _ := newTestService()
		cmd := RegisterCmd{Name: "A", Email: "a@b.c", Password: "p", Role: "agent"}

		_, err := svc.Register(context.Background(), cmd)
		require.NoError(t, err)
		cmd.Email = "A@B.C"
		_, err = svc.Register(context.Background(), cmd)
		assert.True(t, domain.Is(err, "email_already_exists"))
	})

	t.Run("publish_failure_does_not_fail_signup", func(t *testing.T) {
		svc, _, pub := newTestService()
		pub.err = errors.New("broker down")

		_, err := svc.Register(context.Background(), RegisterCmd{Name: "A", Email: "a@b.c", Password: "p", Role: "client"})
		assert.NoError(t, err)
	})

	t.Run("hash_failure", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, prefixHasher{err: domain.ErrHashFailed(errors.New("x"))}, nil, fixedClock{time.Now()})

		_, err := svc.Register(context.Background(), RegisterCmd{Name: "A", Email: "a@b.c", Password: "p", Role: "client"})
		assert.True(t, domain.Is(err, "hash_failed"))
		assert.Empty(t, repo.users)
	})
}

func TestList(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.users = []domain.User{
		{ID: "1", Name: "A", Email: "a@b.c", PasswordHash: "h", Role: domain.RoleClient},
		{ID: "2", Name: "B", Email: "b@b.c", PasswordHash: "h", Role: domain.RoleAgent},
	}

	t.Run("agent_sees_all_without_hashes", func(t *testing.T) {
		users, err := svc.List(context.Background(), domain.Actor{ID: "2", Role: domain.RoleAgent, IsActive: true})
		require.NoError(t, err)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Empty(t, u.PasswordHash)
		}
		assert.Equal(t, "h", repo.users[0].PasswordHash)
	})

	t.Run("client_forbidden", func(t *testing.T) {
		_, err := svc.List(context.Background(), domain.Actor{ID: "1", Role: domain.RoleClient, IsActive: true})
		assert.True(t, domain.Is(err, "insufficient_role"))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.List(context.Background(), domain.Actor{})
		assert.True(t, domain.Is(err, "unauthenticated"))
	})
}
