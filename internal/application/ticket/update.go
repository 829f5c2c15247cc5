package ticket

import (
	"context"
	"strings"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/metrics"
)

type UpdateCmd struct {
	ID    string
	Patch domain.TicketPatch
}

// Update applies an agent's changes. Moving a ticket into closed sends exactly one
// notification to the ticket's stored email; no other transition notifies.
func (s *Service) Update(ctx context.Context, actor domain.Actor, cmd UpdateCmd) (TicketView, error) {
	if err := RequireAgent(actor, "update"); err != nil {
		return TicketView{}, err
	}
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return TicketView{}, domain.ErrMissingField("id")
	}

	if cmd.Patch.AssignedTo != nil {
		if err := s.checkAssignee(ctx, strings.TrimSpace(*cmd.Patch.AssignedTo)); err != nil {
			return TicketView{}, err
		}
	}

	var prev domain.TicketStatus
	updated, err := s.tickets.UpdateFunc(ctx, id, func(t *domain.Ticket) error {
		prev = t.Status
		return t.ApplyUpdate(cmd.Patch, s.clock.Now())
	})
	if err != nil {
		return TicketView{}, err
	}

	closed := prev != domain.StatusClosed && updated.Status == domain.StatusClosed

	metrics.RecordTicketOp("update")
	lg := logger.WithCtx(ctx)
	lg.Info().
		Str("ticket_id", updated.ID).
		Str("actor_id", actor.ID).
		Str("from", string(prev)).
		Str("to", string(updated.Status)).
		Msg("ticket updated")

	s.invalidateLists(ctx, updated.CreatedBy)
	s.publish(ctx, events.TicketUpdated, actor, updated, prev)
	if closed {
		metrics.RecordTicketOp("close")
		s.publish(ctx, events.TicketClosed, actor, updated, prev)
		s.notifier.TicketClosed(ctx, updated)
	}

	views, err := s.enrich(ctx, []*domain.Ticket{updated})
	if err != nil {
		// the write is committed; return it without references
		lg.Warn().Err(err).Str("ticket_id", updated.ID).Msg("ticket enrich failed")
		return TicketView{Ticket: updated}, nil
	}
	return views[0], nil
}

// checkAssignee accepts "" (unassign) or the id of an existing agent.
func (s *Service) checkAssignee(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.ErrInvalidField("assignedTo", "unknown user")
		}
		return err
	}
	if u.Role != domain.RoleAgent {
		return domain.ErrInvalidField("assignedTo", "must be an agent")
	}
	return nil
}
