package router

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/domain"
)

// memStore backs every repository port for router-level tests.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	tickets  map[string]domain.Ticket
	comments []domain.Comment
}

func newMemStore() *memStore {
	return &memStore{users: map[string]domain.User{}, tickets: map[string]domain.Ticket{}}
}

// ---- users ----

func (s *memStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = domain.NormalizeEmail(u.Email)
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = domain.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (s *memStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (s *memStore) GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// ---- tickets ----

type memTickets struct{ *memStore }

func (s memTickets) Create(ctx context.Context, t *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.ID] = *t
	return nil
}

func (s memTickets) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	return &t, nil
}

func (s memTickets) List(ctx context.Context, q ticket.Query) ([]*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Ticket
	for _, t := range s.tickets {
		if q.CreatedBy != "" && t.CreatedBy != q.CreatedBy {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memTickets) UpdateFunc(ctx context.Context, id string, fn func(t *domain.Ticket) error) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	if err := fn(&t); err != nil {
		return nil, err
	}
	s.tickets[id] = t
	return &t, nil
}

func (s memTickets) Delete(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	delete(s.tickets, id)
	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.TicketID != id {
			kept = append(kept, c)
		}
	}
	s.comments = kept
	return &t, nil
}

func (s memTickets) Stats(ctx context.Context, createdBy string) (domain.TicketStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := domain.NewTicketStats()
	for _, t := range s.tickets {
		if createdBy != "" && t.CreatedBy != createdBy {
			continue
		}
		st.Total++
		st.ByStatus[t.Status]++
		st.ByPriority[t.Priority]++
	}
	return st, nil
}

// ---- comments ----

type memComments struct{ *memStore }

func (s memComments) Create(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[c.TicketID]; !ok {
		return domain.ErrTicketNotFound()
	}
	s.comments = append(s.comments, *c)
	return nil
}

func (s memComments) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Comment
	for _, c := range s.comments {
		if c.TicketID == ticketID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}
