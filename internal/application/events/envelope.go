package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	appCtx "github.com/baechuer/helpdesk/internal/pkg/context"
)

const (
	Version  = 1
	Producer = "helpdesk"
)

// Routing keys on the topic exchange.
const (
	TicketCreated  = "ticket.created"
	TicketUpdated  = "ticket.updated"
	TicketClosed   = "ticket.closed"
	TicketDeleted  = "ticket.deleted"
	CommentCreated = "comment.created"
	UserRegistered = "user.registered"
)

// Publisher delivers a domain event. Delivery is best-effort; callers log failures.
type Publisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}

// DomainEventEnvelope is the stable contract for all domain events emitted by helpdesk.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// ID is used by publishers as the broker message id.
func (e DomainEventEnvelope[T]) ID() string { return e.MessageID }

func NewEnvelope[T any](ctx context.Context, now time.Time, payload T) DomainEventEnvelope[T] {
	return DomainEventEnvelope[T]{
		Version:    Version,
		Producer:   Producer,
		MessageID:  uuid.NewString(),
		TraceID:    appCtx.GetRequestID(ctx),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}

type TicketPayload struct {
	TicketID   string  `json:"ticket_id"`
	CreatedBy  string  `json:"created_by"`
	AssignedTo *string `json:"assigned_to,omitempty"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	PrevStatus string  `json:"prev_status,omitempty"`
	ActorID    string  `json:"actor_id"`
	ActorRole  string  `json:"actor_role"`
}

type CommentPayload struct {
	CommentID string `json:"comment_id"`
	TicketID  string `json:"ticket_id"`
	AuthorID  string `json:"author_id"`
	ActorRole string `json:"actor_role"`
}

type UserPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
