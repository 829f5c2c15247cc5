package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minTextLen        = 3
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxNameLen        = 120
	maxEmailLen       = 254
)

type Ticket struct {
	ID          string
	Title       string
	Description string
	Name        string
	CreatedBy   string
	AssignedTo  *string
	Status      TicketStatus
	Priority    TicketPriority
	Email       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTicket validates the submitted fields and builds an open ticket owned by createdBy.
// An empty priority defaults to medium.
func NewTicket(createdBy, email, title, description, name, priority string, now time.Time) (*Ticket, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	name = strings.TrimSpace(name)
	priority = strings.TrimSpace(priority)

	if strings.TrimSpace(createdBy) == "" {
		return nil, ErrUnauthenticated()
	}
	if title == "" {
		return nil, ErrMissingField("title")
	}
	if description == "" {
		return nil, ErrMissingField("description")
	}
	if name == "" {
		return nil, ErrMissingField("name")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return nil, ErrInvalidField("name", "must be at most 120 characters")
	}

	p := PriorityMedium
	if priority != "" {
		p = TicketPriority(priority)
		if !p.Valid() {
			return nil, ErrInvalidField("priority", "must be one of: low, medium, high")
		}
	}

	t := now.UTC()
	return &Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Name:        name,
		CreatedBy:   createdBy,
		Status:      StatusOpen,
		Priority:    p,
		Email:       NormalizeEmail(email),
		CreatedAt:   t,
		UpdatedAt:   t,
	}, nil
}

// TicketPatch carries the optional fields of a ticket update. Nil means unchanged.
// An empty AssignedTo clears the assignment.
type TicketPatch struct {
	Title       *string
	Description *string
	Name        *string
	Status      *string
	Priority    *string
	AssignedTo  *string
	Email       *string
}

func (p TicketPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Name == nil &&
		p.Status == nil && p.Priority == nil && p.AssignedTo == nil && p.Email == nil
}

// ApplyUpdate validates and applies p. The ticket is left untouched on error.
func (t *Ticket) ApplyUpdate(p TicketPatch, now time.Time) error {
	next := *t

	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" {
			return ErrMissingField("title")
		}
		if err := validateTitle(v); err != nil {
			return err
		}
		next.Title = v
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if v == "" {
			return ErrMissingField("description")
		}
		if err := validateDescription(v); err != nil {
			return err
		}
		next.Description = v
	}
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		if v == "" {
			return ErrMissingField("name")
		}
		if utf8.RuneCountInString(v) > maxNameLen {
			return ErrInvalidField("name", "must be at most 120 characters")
		}
		next.Name = v
	}
	if p.Priority != nil {
		v := TicketPriority(strings.TrimSpace(*p.Priority))
		if !v.Valid() {
			return ErrInvalidField("priority", "must be one of: low, medium, high")
		}
		next.Priority = v
	}
	if p.Status != nil {
		v := TicketStatus(strings.TrimSpace(*p.Status))
		if !v.Valid() {
			return ErrInvalidField("status", "must be one of: open, in_progress, resolved, closed")
		}
		if !t.Status.CanTransitionTo(v) {
			return ErrInvalidTransition(t.Status, v)
		}
		next.Status = v
	}
	if p.Email != nil {
		v := NormalizeEmail(*p.Email)
		if v == "" {
			return ErrMissingField("email")
		}
		if !strings.Contains(v, "@") || len(v) > maxEmailLen {
			return ErrInvalidField("email", "invalid format")
		}
		next.Email = v
	}
	if p.AssignedTo != nil {
		v := strings.TrimSpace(*p.AssignedTo)
		if v == "" {
			next.AssignedTo = nil
		} else {
			next.AssignedTo = &v
		}
	}

	next.UpdatedAt = now.UTC()
	*t = next
	return nil
}

// IsOwnedBy reports whether userID created the ticket.
func (t *Ticket) IsOwnedBy(userID string) bool {
	return userID != "" && t.CreatedBy == userID
}

// CanBeAccessedBy is the read/comment rule: the owner or any agent.
func (t *Ticket) CanBeAccessedBy(a Actor) bool {
	return a.IsAgent() || t.IsOwnedBy(a.ID)
}

func validateTitle(v string) error {
	n := utf8.RuneCountInString(v)
	if n < minTextLen {
		return ErrInvalidField("title", "must be at least 3 characters")
	}
	if n > maxTitleLen {
		return ErrInvalidField("title", "must be at most 200 characters")
	}
	return nil
}

func validateDescription(v string) error {
	n := utf8.RuneCountInString(v)
	if n < minTextLen {
		return ErrInvalidField("description", "must be at least 3 characters")
	}
	if n > maxDescriptionLen {
		return ErrInvalidField("description", "must be at most 5000 characters")
	}
	return nil
}

// TicketStats aggregates ticket counts for dashboards.
type TicketStats struct {
	Total      int
	ByStatus   map[TicketStatus]int
	ByPriority map[TicketPriority]int
}

// NewTicketStats returns stats with every status and priority present at zero.
func NewTicketStats() TicketStats {
	s := TicketStats{
		ByStatus:   make(map[TicketStatus]int, len(AllStatuses)),
		ByPriority: make(map[TicketPriority]int, len(AllPriorities)),
	}
	for _, st := range AllStatuses {
		s.ByStatus[st] = 0
	}
	for _, p := range AllPriorities {
		s.ByPriority[p] = 0
	}
	return s
}
