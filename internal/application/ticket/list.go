package ticket

import (
	"context"
	"strings"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

type ListFilter struct {
	Status string // "" or "all" means every status
}

func (f ListFilter) normalize() (domain.TicketStatus, error) {
	s := strings.TrimSpace(f.Status)
	if s == "" || s == statusAll {
		return "", nil
	}
	st := domain.TicketStatus(s)
	if !st.Valid() {
		return "", domain.ErrInvalidField("status", "must be one of: all, open, in_progress, resolved, closed")
	}
	return st, nil
}

// List returns the tickets visible to actor, newest first.
// Clients only see tickets they created; agents see all of them.
func (s *Service) List(ctx context.Context, actor domain.Actor, f ListFilter) ([]TicketView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	status, err := f.normalize()
	if err != nil {
		return nil, err
	}

	lg := logger.WithCtx(ctx)
	key := cacheKeyList(actor, status)
	if s.cache != nil {
		var cached []TicketView
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			lg.Warn().Err(err).Str("key", key).Msg("ticket list cache get failed")
		} else if found {
			lg.Debug().Str("key", key).Msg("ticket list cache hit")
			return cached, nil
		}
	}

	q := Query{Status: status}
	if !actor.IsAgent() {
		q.CreatedBy = actor.ID
	}
	items, err := s.tickets.List(ctx, q)
	if err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, items)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, views, s.ttlList); err != nil {
			lg.Warn().Err(err).Str("key", key).Msg("ticket list cache set failed")
		}
	}
	return views, nil
}

// enrich attaches creator and assignee references in one user lookup.
func (s *Service) enrich(ctx context.Context, items []*domain.Ticket) ([]TicketView, error) {
	views := make([]TicketView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, t := range items {
		add(t.CreatedBy)
		if t.AssignedTo != nil {
			add(*t.AssignedTo)
		}
	}

	users, err := s.users.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, t := range items {
		v := TicketView{Ticket: t, Creator: refOf(users, t.CreatedBy)}
		if t.AssignedTo != nil {
			v.Assignee = refOf(users, *t.AssignedTo)
		}
		views = append(views, v)
	}
	return views, nil
}

func refOf(users map[string]domain.User, id string) *UserRef {
	u, ok := users[id]
	if !ok {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
