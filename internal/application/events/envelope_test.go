package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appCtx "github.com/baechuer/helpdesk/internal/pkg/context"
)

func TestNewEnvelope(t *testing.T) {
	ctx := appCtx.WithRequestID(context.Background(), "rid-1")
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))

	env := NewEnvelope(ctx, now, TicketPayload{TicketID: "t1", Status: "open"})

	assert.Equal(t, Version, env.Version)
	assert.Equal(t, Producer, env.Producer)
	assert.NotEmpty(t, env.MessageID)
	assert.Equal(t, env.MessageID, env.ID())
	assert.Equal(t, "rid-1", env.TraceID)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())
	assert.Equal(t, "t1", env.Payload.TicketID)
}

func TestNewEnvelope_UniqueIDs(t *testing.T) {
	a := NewEnvelope(context.Background(), time.Now(), UserPayload{})
	b := NewEnvelope(context.Background(), time.Now(), UserPayload{})
	assert.NotEqual(t, a.MessageID, b.MessageID)
	assert.Empty(t, a.TraceID)
}
