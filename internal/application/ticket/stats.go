package ticket

import (
	"context"

	"github.com/baechuer/helpdesk/internal/domain"
)

// Stats summarizes tickets for a dashboard: all of them for agents, the caller's own for clients.
func (s *Service) Stats(ctx context.Context, actor domain.Actor) (domain.TicketStats, error) {
	if err := requireActor(actor); err != nil {
		return domain.TicketStats{}, err
	}
	owner := actor.ID
	if actor.IsAgent() {
		owner = ""
	}
	return s.tickets.Stats(ctx, owner)
}
