package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/baechuer/helpdesk/internal/application/notify"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender delivers through the SendGrid v3 mail API.
type SendGridSender struct {
	lg   zerolog.Logger
	cli  sendgridClient
	from *mail.Email
}

func NewSendGridSender(apiKey, fromEmail, fromName string, lg zerolog.Logger) *SendGridSender {
	return &SendGridSender{
		lg:   lg.With().Str("component", "sendgrid_sender").Logger(),
		cli:  sendgrid.NewSendClient(apiKey),
		from: mail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg notify.Message) error {
	to := mail.NewEmail("", msg.To)
	m := mail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := s.cli.SendWithContext(ctx, m)
	if err != nil {
		return TemporaryError{msg: "sendgrid request failed: " + err.Error()}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		s.lg.Info().Str("to", msg.To).Int("status", resp.StatusCode).Msg("sendgrid send ok")
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return TemporaryError{msg: fmt.Sprintf("sendgrid status %d: %s", resp.StatusCode, resp.Body)}
	default:
		return PermanentError{msg: fmt.Sprintf("sendgrid status %d: %s", resp.StatusCode, resp.Body)}
	}
}
