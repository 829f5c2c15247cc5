package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baechuer/helpdesk/internal/domain"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx, insertCommentSQL,
		c.ID, c.TicketID, c.AuthorID, c.Message, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		// the ticket can disappear between the access check and the insert
		if strings.Contains(fkConstraint(err), "ticket_id") {
			return domain.ErrTicketNotFound()
		}
		if fkConstraint(err) != "" {
			return domain.ErrUserNotFound()
		}
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *CommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, listCommentsByTicketSQL, ticketID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Message, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
