package ticket

import (
	"context"
	"strings"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/metrics"
)

// Delete removes a ticket and, through the store, its comments. Agents only.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) (*domain.Ticket, error) {
	if err := RequireAgent(actor, "delete"); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrMissingField("id")
	}

	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.RecordTicketOp("delete")
	logger.WithCtx(ctx).Info().
		Str("ticket_id", deleted.ID).
		Str("actor_id", actor.ID).
		Msg("ticket deleted")

	s.invalidateLists(ctx, deleted.CreatedBy)
	s.publish(ctx, events.TicketDeleted, actor, deleted, "")
	return deleted, nil
}
