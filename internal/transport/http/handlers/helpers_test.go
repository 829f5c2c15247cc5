package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/application/user"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/transport/http/middleware"
)

// mustJSONBody marshals v to JSON and returns an io.Reader for request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadData decodes the "data" member of a success envelope into out.
func mustReadData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, rr.Body.String())
	}
	if env.Status != "success" {
		t.Fatalf("expected success envelope; body=%s", rr.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v; body=%s", err, rr.Body.String())
	}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v; body=%s", err, rr.Body.String())
	}
	return body.Error.Code
}

func readCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// asUser attaches a verified session for id/role to req.
func asUser(req *http.Request, id string, role domain.Role) *http.Request {
	ctx := middleware.WithClaims(req.Context(), auth.TokenClaims{
		UserID:    id,
		Role:      role,
		Active:    true,
		TokenID:   "jti-" + id,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	return req.WithContext(ctx)
}

// ---- stubs ----

type stubUsers struct {
	registered user.RegisterCmd
	err        error
	list       []domain.User
}

func (s *stubUsers) Register(ctx context.Context, cmd user.RegisterCmd) (domain.User, error) {
	s.registered = cmd
	if s.err != nil {
		return domain.User{}, s.err
	}
	return domain.User{ID: "u-new", Name: cmd.Name, Email: cmd.Email, Role: domain.Role(cmd.Role), IsActive: true}, nil
}

func (s *stubUsers) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !actor.IsAgent() {
		return nil, domain.ErrInsufficientRole("agent")
	}
	return s.list, nil
}

type stubAuth struct {
	session   auth.Session
	loginErr  error
	logoutErr error
	revoked   string
	me        domain.User
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (auth.Session, error) {
	if s.loginErr != nil {
		return auth.Session{}, s.loginErr
	}
	return s.session, nil
}

func (s *stubAuth) Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error {
	s.revoked = tokenID
	return s.logoutErr
}

func (s *stubAuth) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if !actor.Authenticated() {
		return domain.User{}, domain.ErrUnauthenticated()
	}
	return s.me, nil
}

type stubTickets struct {
	listFilter ticket.ListFilter
	listed     []ticket.TicketView
	created    ticket.CreateCmd
	updated    ticket.UpdateCmd
	deletedID  string
	stats      domain.TicketStats
	err        error
}

func (s *stubTickets) List(ctx context.Context, actor domain.Actor, f ticket.ListFilter) ([]ticket.TicketView, error) {
	s.listFilter = f
	return s.listed, s.err
}

func (s *stubTickets) Create(ctx context.Context, actor domain.Actor, cmd ticket.CreateCmd) (ticket.TicketView, error) {
	s.created = cmd
	if s.err != nil {
		return ticket.TicketView{}, s.err
	}
	t, err := domain.NewTicket(actor.ID, "ana@example.com", cmd.Title, cmd.Description, cmd.Name, cmd.Priority, time.Now())
	if err != nil {
		return ticket.TicketView{}, err
	}
	return ticket.TicketView{Ticket: t}, nil
}

func (s *stubTickets) Update(ctx context.Context, actor domain.Actor, cmd ticket.UpdateCmd) (ticket.TicketView, error) {
	s.updated = cmd
	if !actor.IsAgent() {
		return ticket.TicketView{}, domain.ErrForbidden("only agents can update tickets")
	}
	if s.err != nil {
		return ticket.TicketView{}, s.err
	}
	t := &domain.Ticket{ID: cmd.ID, Status: domain.StatusOpen, Priority: domain.PriorityMedium}
	if err := t.ApplyUpdate(cmd.Patch, time.Now()); err != nil {
		return ticket.TicketView{}, err
	}
	return ticket.TicketView{Ticket: t}, nil
}

func (s *stubTickets) Delete(ctx context.Context, actor domain.Actor, id string) (*domain.Ticket, error) {
	s.deletedID = id
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Ticket{ID: id}, nil
}

func (s *stubTickets) Stats(ctx context.Context, actor domain.Actor) (domain.TicketStats, error) {
	return s.stats, s.err
}

type stubComments struct {
	listTicket string
	created    comment.CreateCmd
	err        error
}

func (s *stubComments) List(ctx context.Context, actor domain.Actor, ticketID string) ([]comment.CommentView, error) {
	s.listTicket = ticketID
	if s.err != nil {
		return nil, s.err
	}
	return []comment.CommentView{{
		Comment: &domain.Comment{ID: "c-1", TicketID: ticketID, AuthorID: actor.ID, Message: "hello"},
		Author:  &comment.AuthorRef{ID: actor.ID, Name: "Ana", Role: actor.Role},
	}}, nil
}

func (s *stubComments) Create(ctx context.Context, actor domain.Actor, cmd comment.CreateCmd) (comment.CommentView, error) {
	s.created = cmd
	if s.err != nil {
		return comment.CommentView{}, s.err
	}
	return comment.CommentView{
		Comment: &domain.Comment{ID: "c-2", TicketID: cmd.TicketID, AuthorID: actor.ID, Message: cmd.Message},
		Author:  &comment.AuthorRef{ID: actor.ID, Role: actor.Role},
	}, nil
}

type stubRelay struct {
	got notify.RelayCmd
	err error
}

func (s *stubRelay) Relay(ctx context.Context, cmd notify.RelayCmd) error {
	s.got = cmd
	return s.err
}
