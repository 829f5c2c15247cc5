package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeUsers struct {
	byID map[string]domain.User
	err  error
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

// plainHasher treats "hash:<pw>" as the hash of pw.
type plainHasher struct{}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeSigner encodes claims by token id so tests can round-trip without crypto.
type fakeSigner struct {
	mu      sync.Mutex
	issued  map[string]TokenClaims
	signErr error
}

func newFakeSigner() *fakeSigner { return &fakeSigner{issued: map[string]TokenClaims{}} }

func (s *fakeSigner) SignAccessToken(c TokenClaims) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := "tok-" + c.TokenID
	s.issued[tok] = c
	return tok, nil
}

func (s *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.issued[token]
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return c, nil
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newFakeDenylist() *fakeDenylist { return &fakeDenylist{revoked: map[string]time.Duration{}} }

func (d *fakeDenylist) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[id] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[id]
	return ok, nil
}
