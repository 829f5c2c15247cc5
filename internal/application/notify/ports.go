package notify

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers one message through a mail relay. One attempt, no retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
