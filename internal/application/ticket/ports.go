package ticket

import (
	"context"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Query narrows a repository listing. Empty fields do not filter.
type Query struct {
	CreatedBy string
	Status    domain.TicketStatus
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// List returns matches newest first.
	List(ctx context.Context, q Query) ([]*domain.Ticket, error)
	// UpdateFunc locks the row, applies fn and persists the result in one transaction.
	// Nothing is written when fn fails.
	UpdateFunc(ctx context.Context, id string, fn func(t *domain.Ticket) error) (*domain.Ticket, error)
	// Delete removes the ticket and returns it as it was.
	Delete(ctx context.Context, id string) (*domain.Ticket, error)
	// Stats counts tickets; createdBy "" means all tickets.
	Stats(ctx context.Context, createdBy string) (domain.TicketStats, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error)
}

// Notifier fires lifecycle emails. Implementations swallow delivery errors.
type Notifier interface {
	TicketCreated(ctx context.Context, t *domain.Ticket)
	TicketClosed(ctx context.Context, t *domain.Ticket)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
