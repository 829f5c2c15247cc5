package comment

import (
	"context"
	"strings"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

const (
	fallbackClientName = "Customer"
	fallbackAgentName  = "Agent"
)

type Service struct {
	comments CommentRepo
	tickets  TicketReader
	users    UserReader
	notifier Notifier
	pub      events.Publisher
	clock    Clock
}

func New(comments CommentRepo, tickets TicketReader, users UserReader, notifier Notifier, pub events.Publisher, clock Clock) *Service {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Service{
		comments: comments,
		tickets:  tickets,
		users:    users,
		notifier: notifier,
		pub:      pub,
		clock:    clock,
	}
}

type AuthorRef struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

type CommentView struct {
	Comment *domain.Comment
	Author  *AuthorRef
}

type CreateCmd struct {
	TicketID string
	Message  string
}

// List returns a ticket's thread oldest first. Only the ticket owner and agents may read it.
func (s *Service) List(ctx context.Context, actor domain.Actor, ticketID string) ([]CommentView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, domain.ErrMissingField("ticketId")
	}

	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.CanBeAccessedBy(actor) {
		return nil, domain.ErrForbidden("not allowed to read comments on this ticket")
	}

	items, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, items)
}

// Create adds a comment as the caller. An agent's comment emails the ticket owner.
func (s *Service) Create(ctx context.Context, actor domain.Actor, cmd CreateCmd) (CommentView, error) {
	if err := requireActor(actor); err != nil {
		return CommentView{}, err
	}

	c, err := domain.NewComment(cmd.TicketID, actor.ID, cmd.Message, s.clock.Now())
	if err != nil {
		return CommentView{}, err
	}

	t, err := s.tickets.GetByID(ctx, c.TicketID)
	if err != nil {
		return CommentView{}, err
	}
	if !t.CanBeAccessedBy(actor) {
		return CommentView{}, domain.ErrForbidden("not allowed to comment on this ticket")
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return CommentView{}, err
	}

	lg := logger.WithCtx(ctx)
	lg.Info().
		Str("comment_id", c.ID).
		Str("ticket_id", c.TicketID).
		Str("author_id", actor.ID).
		Str("role", string(actor.Role)).
		Msg("comment created")

	env := events.NewEnvelope(ctx, s.clock.Now(), events.CommentPayload{
		CommentID: c.ID,
		TicketID:  c.TicketID,
		AuthorID:  actor.ID,
		ActorRole: string(actor.Role),
	})
	if err := s.pub.PublishEvent(ctx, events.CommentCreated, env); err != nil {
		lg.Warn().Err(err).Str("comment_id", c.ID).Msg("publish comment.created failed")
	}

	view := CommentView{Comment: c, Author: &AuthorRef{ID: actor.ID, Role: actor.Role}}
	author, err := s.users.GetByID(ctx, actor.ID)
	if err == nil {
		view.Author.Name = author.Name
	}

	if actor.IsAgent() {
		s.notifyOwner(ctx, t, author.Name, c.Message)
	}
	return view, nil
}

func requireActor(a domain.Actor) error {
	if !a.Authenticated() || a.Role == "" {
		return domain.ErrUnauthenticated()
	}
	if !a.IsActive {
		return domain.ErrAccountInactive()
	}
	return nil
}

// notifyOwner prefers the address stored on the ticket and falls back to the owner's account.
func (s *Service) notifyOwner(ctx context.Context, t *domain.Ticket, agentName, message string) {
	to := t.Email
	clientName := t.Name

	if to == "" || clientName == "" {
		owner, err := s.users.GetByID(ctx, t.CreatedBy)
		if err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("ticket_id", t.ID).Msg("load ticket owner failed")
		} else {
			if to == "" {
				to = owner.Email
			}
			if clientName == "" {
				clientName = owner.Name
			}
		}
	}
	if to == "" {
		logger.WithCtx(ctx).Warn().Str("ticket_id", t.ID).Msg("no client email for reply notification")
		return
	}
	if clientName == "" {
		clientName = fallbackClientName
	}
	if agentName == "" {
		agentName = fallbackAgentName
	}

	s.notifier.AgentReplied(ctx, notify.ReplyNotice{
		Ticket:     t,
		To:         to,
		ClientName: clientName,
		AgentName:  agentName,
		Message:    message,
	})
}

func (s *Service) withAuthors(ctx context.Context, items []*domain.Comment) ([]CommentView, error) {
	views := make([]CommentView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, c := range items {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
	}
	users, err := s.users.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range items {
		v := CommentView{Comment: c}
		if u, ok := users[c.AuthorID]; ok {
			v.Author = &AuthorRef{ID: u.ID, Name: u.Name, Role: u.Role}
		}
		views = append(views, v)
	}
	return views, nil
}
