package dto

import (
	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/domain"
)

func ToUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserList(users []domain.User) UserList {
	out := UserList{Users: make([]UserView, 0, len(users)), Total: len(users)}
	for _, u := range users {
		out.Users = append(out.Users, ToUserView(u))
	}
	return out
}

func ToSessionView(s auth.Session) SessionView {
	return SessionView{Token: s.Token, ExpiresAt: s.ExpiresAt, User: ToUserView(s.User)}
}

func ToTicket(t *domain.Ticket) TicketView {
	return TicketView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Name:        t.Name,
		Email:       t.Email,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTicketView(v ticket.TicketView) TicketView {
	out := ToTicket(v.Ticket)
	out.Creator = v.Creator
	out.Assignee = v.Assignee
	return out
}

func ToTicketList(items []ticket.TicketView) []TicketView {
	out := make([]TicketView, 0, len(items))
	for _, v := range items {
		out = append(out, ToTicketView(v))
	}
	return out
}

func ToCommentView(v comment.CommentView) CommentView {
	return CommentView{
		ID:        v.Comment.ID,
		TicketID:  v.Comment.TicketID,
		Message:   v.Comment.Message,
		Author:    v.Author,
		CreatedAt: v.Comment.CreatedAt,
		UpdatedAt: v.Comment.UpdatedAt,
	}
}

func ToCommentList(items []comment.CommentView) []CommentView {
	out := make([]CommentView, 0, len(items))
	for _, v := range items {
		out = append(out, ToCommentView(v))
	}
	return out
}

func ToStatsView(s domain.TicketStats) StatsView {
	return StatsView{Total: s.Total, ByStatus: s.ByStatus, ByPriority: s.ByPriority}
}
