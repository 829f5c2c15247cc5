package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxMessageLen = 10000

type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewComment(ticketID, authorID, message string, now time.Time) (*Comment, error) {
	ticketID = strings.TrimSpace(ticketID)
	message = strings.TrimSpace(message)

	if ticketID == "" {
		return nil, ErrMissingField("ticketId")
	}
	if message == "" {
		return nil, ErrMissingField("message")
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, ErrInvalidField("message", "must be at most 10000 characters")
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, ErrUnauthenticated()
	}

	t := now.UTC()
	return &Comment{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		AuthorID:  authorID,
		Message:   message,
		CreatedAt: t,
		UpdatedAt: t,
	}, nil
}
