package ticket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	listErr error
	lists   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeRepo) put(t *domain.Ticket) {
	cp := *t
	r.tickets[t.ID] = &cp
}

func (r *fakeRepo) Create(ctx context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(t)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, q Query) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Ticket
	for _, t := range r.tickets {
		if q.CreatedBy != "" && t.CreatedBy != q.CreatedBy {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) UpdateFunc(ctx context.Context, id string, fn func(t *domain.Ticket) error) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	cp := *t
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.put(&cp)
	return &cp, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	delete(r.tickets, id)
	return t, nil
}

func (r *fakeRepo) Stats(ctx context.Context, createdBy string) (domain.TicketStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := domain.NewTicketStats()
	for _, t := range r.tickets {
		if createdBy != "" && t.CreatedBy != createdBy {
			continue
		}
		s.Total++
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
	}
	return s, nil
}

type fakeUsers struct {
	byID map[string]domain.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUsers) GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []string
	closed  []string
}

func (n *recordingNotifier) TicketCreated(ctx context.Context, t *domain.Ticket) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, t.Email)
}

func (n *recordingNotifier) TicketClosed(ctx context.Context, t *domain.Ticket) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, t.Email)
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

// mapCache stores JSON like the redis client does.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}
