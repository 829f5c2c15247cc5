package dto

import "github.com/baechuer/helpdesk/internal/domain"

// -------- Users / auth --------

// RegisterRequest only checks presence and size here; the user service owns the content rules.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest carries no "required" tags: empty credentials must fail as invalid_credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=1024"`
}

// -------- Tickets --------

type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTicketRequest carries no tags; the domain patch validates every field.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Name        *string `json:"name"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assignedTo"`
	Email       *string `json:"email"`
}

func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	return domain.TicketPatch{
		Title:       r.Title,
		Description: r.Description,
		Name:        r.Name,
		Status:      r.Status,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		Email:       r.Email,
	}
}

// -------- Comments --------

type CreateCommentRequest struct {
	TicketID string `json:"ticketId" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// -------- Mail relay --------

// SendMailRequest keeps the relay's established field names.
type SendMailRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"asunto" validate:"required,max=300"`
	Message string `json:"mensaje" validate:"required"`
}
