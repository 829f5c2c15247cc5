package ticket

import (
	"time"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
)

type Service struct {
	tickets  TicketRepo
	users    UserReader
	notifier Notifier
	pub      events.Publisher
	cache    Cache // nil disables list caching
	clock    Clock

	ttlList time.Duration
}

func New(
	tickets TicketRepo,
	users UserReader,
	notifier Notifier,
	pub events.Publisher,
	cache Cache,
	clock Clock,
	ttlList time.Duration,
) *Service {
	if ttlList <= 0 {
		ttlList = 15 * time.Second
	}
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Service{
		tickets:  tickets,
		users:    users,
		notifier: notifier,
		pub:      pub,
		cache:    cache,
		clock:    clock,
		ttlList:  ttlList,
	}
}

// UserRef is the public projection of a related user.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketView is a ticket joined with its creator and assignee.
type TicketView struct {
	Ticket   *domain.Ticket
	Creator  *UserRef
	Assignee *UserRef
}

func requireActor(a domain.Actor) error {
	if !a.Authenticated() {
		return domain.ErrUnauthenticated()
	}
	if !a.IsActive {
		return domain.ErrAccountInactive()
	}
	return nil
}

// RequireAgent is the permission rule for agent-only ticket actions.
// Transports may call it before decoding input so a client is refused whatever it sends.
func RequireAgent(a domain.Actor, action string) error {
	if err := requireActor(a); err != nil {
		return err
	}
	if !a.IsAgent() {
		return domain.ErrForbidden("only agents can " + action + " tickets")
	}
	return nil
}
