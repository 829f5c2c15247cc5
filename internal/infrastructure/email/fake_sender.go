package email

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/baechuer/helpdesk/internal/application/notify"
)

// FakeSender logs instead of delivering. It keeps what it was given for inspection.
//
// failMode:
// - "" or "none": always succeed
// - "transient": return TemporaryError
// - "permanent": return PermanentError
type FakeSender struct {
	lg       zerolog.Logger
	failMode string

	mu   sync.Mutex
	sent []notify.Message
}

func NewFakeSender(lg zerolog.Logger, failMode string) *FakeSender {
	return &FakeSender{
		lg:       lg.With().Str("component", "fake_sender").Logger(),
		failMode: strings.ToLower(strings.TrimSpace(failMode)),
	}
}

func (s *FakeSender) Send(ctx context.Context, msg notify.Message) error {
	s.lg.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("FAKE send email")

	switch s.failMode {
	case "transient":
		return TemporaryError{msg: "fake transient failure"}
	case "permanent":
		return PermanentError{msg: "fake permanent failure"}
	}

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of every message accepted so far.
func (s *FakeSender) Sent() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Message, len(s.sent))
	copy(out, s.sent)
	return out
}
