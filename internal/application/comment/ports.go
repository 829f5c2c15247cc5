package comment

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID string) ([]*domain.Comment, error)
}

type TicketReader interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error)
}

type Notifier interface {
	AgentReplied(ctx context.Context, r notify.ReplyNotice)
}
