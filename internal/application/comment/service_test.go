package comment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeComments struct {
	mu    sync.Mutex
	items []*domain.Comment
}

func (f *fakeComments) Create(ctx context.Context, c *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, c)
	return nil
}

func (f *fakeComments) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Comment
	for _, c := range f.items {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeTickets map[string]*domain.Ticket

func (f fakeTickets) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, ok := f[id]
	if !ok {
		return nil, domain.ErrTicketNotFound()
	}
	return t, nil
}

type fakeUsers map[string]domain.User

func (f fakeUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := f[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f fakeUsers) GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	out := map[string]domain.User{}
	for _, id := range ids {
		if u, ok := f[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type recordingNotifier struct {
	replies []notify.ReplyNotice
}

func (n *recordingNotifier) AgentReplied(ctx context.Context, r notify.ReplyNotice) {
	n.replies = append(n.replies, r)
}

var (
	ana   = domain.Actor{ID: "u-ana", Role: domain.RoleClient, IsActive: true}
	carl  = domain.Actor{ID: "u-carl", Role: domain.RoleClient, IsActive: true}
	agent = domain.Actor{ID: "u-bob", Role: domain.RoleAgent, IsActive: true}
)

type harness struct {
	svc      *Service
	comments *fakeComments
	tickets  fakeTickets
	notifier *recordingNotifier
}

func newHarness() harness {
	users := fakeUsers{
		"u-ana":  {ID: "u-ana", Name: "Ana", Email: "ana@example.com", Role: domain.RoleClient},
		"u-carl": {ID: "u-carl", Name: "Carl", Email: "carl@example.com", Role: domain.RoleClient},
		"u-bob":  {ID: "u-bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleAgent},
	}
	tickets := fakeTickets{
		"t1": {ID: "t1", Title: "Printer", Name: "Ana P.", CreatedBy: "u-ana", Email: "ana@example.com", Status: domain.StatusOpen},
		"t2": {ID: "t2", Title: "Legacy", CreatedBy: "u-ana", Status: domain.StatusOpen},
	}
	h := harness{comments: &fakeComments{}, tickets: tickets, notifier: &recordingNotifier{}}
	h.svc = New(h.comments, tickets, users, h.notifier, nil, fixedClock{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
	return h
}

func TestCreate_Permissions(t *testing.T) {
	t.Run("owner_may_comment_without_notification", func(t *testing.T) {
		h := newHarness()
		v, err := h.svc.Create(context.Background(), ana, CreateCmd{TicketID: "t1", Message: " thanks "})
		require.NoError(t, err)
		assert.Equal(t, "thanks", v.Comment.Message)
		assert.Equal(t, "u-ana", v.Comment.AuthorID)
		assert.Equal(t, "Ana", v.Author.Name)
		assert.Empty(t, h.notifier.replies)
	})

	t.Run("other_client_forbidden", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), carl, CreateCmd{TicketID: "t1", Message: "hi"})
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		assert.Empty(t, h.comments.items)
	})

	t.Run("agent_reply_notifies_ticket_email", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), agent, CreateCmd{TicketID: "t1", Message: "On it"})
		require.NoError(t, err)
		require.Len(t, h.notifier.replies, 1)
		r := h.notifier.replies[0]
		assert.Equal(t, "ana@example.com", r.To)
		assert.Equal(t, "Ana P.", r.ClientName)
		assert.Equal(t, "Bob", r.AgentName)
		assert.Equal(t, "On it", r.Message)
	})

	t.Run("agent_reply_falls_back_to_owner_account", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), agent, CreateCmd{TicketID: "t2", Message: "On it"})
		require.NoError(t, err)
		require.Len(t, h.notifier.replies, 1)
		assert.Equal(t, "ana@example.com", h.notifier.replies[0].To)
		assert.Equal(t, "Ana", h.notifier.replies[0].ClientName)
	})

	t.Run("unknown_ticket", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), agent, CreateCmd{TicketID: "zz", Message: "hi"})
		assert.True(t, domain.Is(err, "ticket_not_found"))
	})

	t.Run("missing_fields", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), ana, CreateCmd{TicketID: "t1", Message: "   "})
		assert.True(t, domain.Is(err, "missing_field"))
		_, err = h.svc.Create(context.Background(), ana, CreateCmd{Message: "hi"})
		assert.True(t, domain.Is(err, "missing_field"))
	})

	t.Run("anonymous", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Create(context.Background(), domain.Actor{}, CreateCmd{TicketID: "t1", Message: "hi"})
		assert.True(t, domain.Is(err, "unauthenticated"))
	})

	t.Run("inactive", func(t *testing.T) {
		h := newHarness()
		off := ana
		off.IsActive = false

		_, err := h.svc.Create(context.Background(), off, CreateCmd{TicketID: "t1", Message: "hi"})
		assert.True(t, domain.Is(err, "account_inactive"))
		_, err = h.svc.List(context.Background(), off, "t1")
		assert.True(t, domain.Is(err, "account_inactive"))
		assert.Empty(t, h.comments.items)
	})
}

func TestList(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.comments.items = []*domain.Comment{
		{ID: "c2", TicketID: "t1", AuthorID: "u-bob", Message: "second", CreatedAt: time.Unix(200, 0)},
		{ID: "c1", TicketID: "t1", AuthorID: "u-ana", Message: "first", CreatedAt: time.Unix(100, 0)},
		{ID: "c3", TicketID: "t2", AuthorID: "u-ana", Message: "other", CreatedAt: time.Unix(50, 0)},
	}

	t.Run("owner_reads_thread_ascending_with_authors", func(t *testing.T) {
		views, err := h.svc.List(ctx, ana, "t1")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "c1", views[0].Comment.ID)
		assert.Equal(t, "c2", views[1].Comment.ID)
		assert.Equal(t, domain.RoleAgent, views[1].Author.Role)
		assert.Equal(t, "Bob", views[1].Author.Name)
	})

	t.Run("agent_reads_any", func(t *testing.T) {
		views, err := h.svc.List(ctx, agent, "t2")
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("other_client_forbidden", func(t *testing.T) {
		_, err := h.svc.List(ctx, carl, "t1")
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("missing_ticket_id", func(t *testing.T) {
		_, err := h.svc.List(ctx, ana, "")
		assert.True(t, domain.Is(err, "missing_field"))
	})

	t.Run("unknown_ticket", func(t *testing.T) {
		_, err := h.svc.List(ctx, agent, "nope")
		assert.True(t, domain.Is(err, "ticket_not_found"))
	})
}
