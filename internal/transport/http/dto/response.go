package dto

import (
	"time"

	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/domain"
)

type UserView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

type UserList struct {
	Users []UserView `json:"users"`
	Total int        `json:"total"`
}

type SessionView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

type TicketView struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedBy   string                `json:"createdBy"`
	AssignedTo  *string               `json:"assignedTo"`
	Creator     *ticket.UserRef       `json:"creator,omitempty"`
	Assignee    *ticket.UserRef       `json:"assignee,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

type CommentView struct {
	ID        string             `json:"id"`
	TicketID  string             `json:"ticketId"`
	Message   string             `json:"message"`
	Author    *comment.AuthorRef `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type StatsView struct {
	Total      int                           `json:"total"`
	ByStatus   map[domain.TicketStatus]int   `json:"byStatus"`
	ByPriority map[domain.TicketPriority]int `json:"byPriority"`
}

type MessageView struct {
	Message string `json:"message"`
}
