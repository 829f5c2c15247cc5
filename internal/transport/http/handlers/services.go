package handlers

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/application/user"
	"github.com/baechuer/helpdesk/internal/domain"
)

// The handlers depend on these narrow views of the application services.

type UserService interface {
	Register(ctx context.Context, cmd user.RegisterCmd) (domain.User, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.User, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error
	Me(ctx context.Context, actor domain.Actor) (domain.User, error)
}

type TicketService interface {
	List(ctx context.Context, actor domain.Actor, f ticket.ListFilter) ([]ticket.TicketView, error)
	Create(ctx context.Context, actor domain.Actor, cmd ticket.CreateCmd) (ticket.TicketView, error)
	Update(ctx context.Context, actor domain.Actor, cmd ticket.UpdateCmd) (ticket.TicketView, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (*domain.Ticket, error)
	Stats(ctx context.Context, actor domain.Actor) (domain.TicketStats, error)
}

type CommentService interface {
	List(ctx context.Context, actor domain.Actor, ticketID string) ([]comment.CommentView, error)
	Create(ctx context.Context, actor domain.Actor, cmd comment.CreateCmd) (comment.CommentView, error)
}

type MailRelay interface {
	Relay(ctx context.Context, cmd notify.RelayCmd) error
}
