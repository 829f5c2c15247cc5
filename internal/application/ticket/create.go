package ticket

import (
	"context"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/metrics"
)

type CreateCmd struct {
	Title       string
	Description string
	Name        string
	Priority    string
}

// Create opens a ticket owned by the caller. The confirmation email goes to the caller's stored address.
func (s *Service) Create(ctx context.Context, actor domain.Actor, cmd CreateCmd) (TicketView, error) {
	if err := requireActor(actor); err != nil {
		return TicketView{}, err
	}

	// Validate before touching the user store.
	t, err := domain.NewTicket(actor.ID, "", cmd.Title, cmd.Description, cmd.Name, cmd.Priority, s.clock.Now())
	if err != nil {
		return TicketView{}, err
	}

	owner, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return TicketView{}, domain.ErrUnauthenticated()
		}
		return TicketView{}, err
	}
	t.Email = domain.NormalizeEmail(owner.Email)

	if err := s.tickets.Create(ctx, t); err != nil {
		return TicketView{}, err
	}

	metrics.RecordTicketOp("create")
	logger.WithCtx(ctx).Info().
		Str("ticket_id", t.ID).
		Str("created_by", t.CreatedBy).
		Str("priority", string(t.Priority)).
		Msg("ticket created")

	s.invalidateLists(ctx, t.CreatedBy)
	s.publish(ctx, events.TicketCreated, actor, t, "")
	s.notifier.TicketCreated(ctx, t)

	return TicketView{
		Ticket:  t,
		Creator: &UserRef{ID: owner.ID, Name: owner.Name, Email: owner.Email},
	}, nil
}
