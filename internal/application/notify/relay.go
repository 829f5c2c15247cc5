package notify

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/metrics"
)

type RelayCmd struct {
	Email   string
	Subject string
	Message string
}

// Relay sends a caller-composed email. Unlike lifecycle notifications, failure is returned.
func (n *Notifier) Relay(ctx context.Context, cmd RelayCmd) error {
	to := strings.TrimSpace(cmd.Email)
	subject := strings.TrimSpace(cmd.Subject)

	if to == "" {
		return domain.ErrMissingField("email")
	}
	if !strings.Contains(to, "@") {
		return domain.ErrInvalidField("email", "invalid format")
	}
	if subject == "" {
		return domain.ErrMissingField("asunto")
	}
	if strings.TrimSpace(cmd.Message) == "" {
		return domain.ErrMissingField("mensaje")
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	err := n.sender.Send(ctx, Message{
		To:      to,
		Subject: subject,
		HTML:    cmd.Message,
	})
	metrics.RecordNotification(KindRelay, err, time.Since(start))
	if err != nil {
		n.lg.Error().Err(err).Str("to", to).Msg("relay email failed")
		return domain.ErrMailRelayFailed(err)
	}
	return nil
}
