package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/helpdesk/internal/domain"
	"github.com/baechuer/helpdesk/internal/metrics"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

const (
	KindCreated = "created"
	KindReply   = "reply"
	KindClosed  = "closed"
	KindRelay   = "relay"

	defaultSendTimeout = 10 * time.Second
)

var statusLabels = map[domain.TicketStatus]string{
	domain.StatusOpen:       "Open",
	domain.StatusInProgress: "In progress",
	domain.StatusResolved:   "Resolved",
	domain.StatusClosed:     "Closed",
}

// Notifier renders ticket lifecycle emails and hands them to a Sender.
// Lifecycle notifications are post-commit side effects: failures are logged and counted, never returned.
type Notifier struct {
	sender  Sender
	lg      zerolog.Logger
	tpl     *template.Template
	appName string
	timeout time.Duration
}

func NewNotifier(sender Sender, lg zerolog.Logger, appName string, timeout time.Duration) (*Notifier, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	if appName == "" {
		appName = "HelpDesk"
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Notifier{
		sender:  sender,
		lg:      lg.With().Str("component", "notifier").Logger(),
		tpl:     tpl,
		appName: appName,
		timeout: timeout,
	}, nil
}

type ticketData struct {
	AppName     string
	Heading     string
	Accent      string
	Border      string
	Name        string
	TicketID    string
	Title       string
	Description string
	Priority    string
	Status      string
}

type replyData struct {
	AppName   string
	Heading   string
	Accent    string
	Border    string
	Name      string
	AgentName string
	TicketID  string
	Title     string
	Message   string
}

// ReplyNotice describes an agent reply the ticket owner should hear about.
type ReplyNotice struct {
	Ticket     *domain.Ticket
	To         string
	ClientName string
	AgentName  string
	Message    string
}

func (n *Notifier) TicketCreated(ctx context.Context, t *domain.Ticket) {
	data := ticketData{
		AppName:     n.appName,
		Heading:     "Ticket created",
		Accent:      "#667eea",
		Border:      "#667eea",
		Name:        t.Name,
		TicketID:    t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      statusLabels[t.Status],
	}
	text := fmt.Sprintf("Hello %s,\n\nYour ticket #%s \"%s\" has been created with %s priority.\n", t.Name, t.ID, t.Title, t.Priority)
	n.deliver(ctx, KindCreated, "ticket_created", data, Message{
		To:      t.Email,
		Subject: fmt.Sprintf("Ticket #%s created - %s", t.ID, t.Title),
		Text:    text,
	}, t.ID)
}

func (n *Notifier) TicketClosed(ctx context.Context, t *domain.Ticket) {
	data := ticketData{
		AppName:  n.appName,
		Heading:  "Ticket closed",
		Accent:   "#10b981",
		Border:   "#10b981",
		Name:     t.Name,
		TicketID: t.ID,
		Title:    t.Title,
		Priority: string(t.Priority),
		Status:   statusLabels[domain.StatusClosed],
	}
	text := fmt.Sprintf("Hello %s,\n\nYour ticket #%s \"%s\" has been closed.\n", t.Name, t.ID, t.Title)
	n.deliver(ctx, KindClosed, "ticket_closed", data, Message{
		To:      t.Email,
		Subject: fmt.Sprintf("Ticket #%s closed - %s", t.ID, t.Title),
		Text:    text,
	}, t.ID)
}

func (n *Notifier) AgentReplied(ctx context.Context, r ReplyNotice) {
	data := replyData{
		AppName:   n.appName,
		Heading:   "New reply",
		Accent:    "#3b82f6",
		Border:    "#3b82f6",
		Name:      r.ClientName,
		AgentName: r.AgentName,
		TicketID:  r.Ticket.ID,
		Title:     r.Ticket.Title,
		Message:   r.Message,
	}
	text := fmt.Sprintf("Hello %s,\n\n%s replied to your ticket #%s \"%s\":\n\n%s\n",
		r.ClientName, r.AgentName, r.Ticket.ID, r.Ticket.Title, r.Message)
	n.deliver(ctx, KindReply, "agent_reply", data, Message{
		To:      r.To,
		Subject: fmt.Sprintf("New reply on your ticket #%s - %s", r.Ticket.ID, r.Ticket.Title),
		Text:    text,
	}, r.Ticket.ID)
}

func (n *Notifier) deliver(ctx context.Context, kind, tplName string, data any, msg Message, ticketID string) {
	lg := n.lg.With().Str("kind", kind).Str("ticket_id", ticketID).Logger()

	if strings.TrimSpace(msg.To) == "" {
		lg.Warn().Msg("notification skipped: no recipient")
		return
	}

	var buf bytes.Buffer
	if err := n.tpl.ExecuteTemplate(&buf, tplName, data); err != nil {
		lg.Error().Err(err).Msg("render notification failed")
		metrics.RecordNotification(kind, err, 0)
		return
	}
	msg.HTML = buf.String()

	// The triggering write is already committed; a cancelled request must not abort the send.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	start := time.Now()
	err := n.sender.Send(sendCtx, msg)
	metrics.RecordNotification(kind, err, time.Since(start))
	if err != nil {
		lg.Error().Err(err).Str("to", msg.To).Msg("send notification failed")
		return
	}
	lg.Info().Str("to", msg.To).Msg("notification sent")
}
