package ticket

import (
	"context"

	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/logger"
)

func (s *Service) invalidateLists(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listKeysFor(ownerID)...); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("owner_id", ownerID).Msg("ticket list cache invalidate failed")
	}
}

func (s *Service) publish(ctx context.Context, key string, actor domain.Actor, t *domain.Ticket, prev domain.TicketStatus) {
	payload := events.TicketPayload{
		TicketID:   t.ID,
		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		PrevStatus: string(prev),
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
	}
	env := events.NewEnvelope(ctx, s.clock.Now(), payload)
	if err := s.pub.PublishEvent(ctx, key, env); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("routing_key", key).
			Str("ticket_id", t.ID).
			Msg("publish ticket event failed")
	}
}
