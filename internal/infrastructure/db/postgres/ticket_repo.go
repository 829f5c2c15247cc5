package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/domain"
)

type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var assigned sql.NullString
	var status, priority string
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Name, &t.CreatedBy, &assigned,
		&status, &priority, &t.Email, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if assigned.Valid {
		t.AssignedTo = &assigned.String
	}
	t.Status = domain.TicketStatus(status)
	t.Priority = domain.TicketPriority(priority)
	return &t, nil
}

func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// mapWriteErr translates constraint failures on ticket writes.
func mapWriteErr(err error) error {
	if strings.Contains(fkConstraint(err), "assigned_to") {
		return domain.ErrInvalidField("assignedTo", "unknown user")
	}
	if fkConstraint(err) != "" {
		return domain.ErrUserNotFound()
	}
	return domain.ErrDBUnavailable(err)
}

func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	_, err := r.db.ExecContext(ctx, insertTicketSQL,
		t.ID, t.Title, t.Description, t.Name, t.CreatedBy, nullable(t.AssignedTo),
		string(t.Status), string(t.Priority), t.Email, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, getTicketSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTicketNotFound()
	}
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return t, nil
}

func (r *TicketRepo) List(ctx context.Context, q ticket.Query) ([]*domain.Ticket, error) {
	var (
		where []string
		args  []any
	)
	if q.CreatedBy != "" {
		args = append(args, q.CreatedBy)
		where = append(where, "created_by = $"+strconv.Itoa(len(args)))
	}
	if q.Status != "" {
		args = append(args, string(q.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []*domain.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// UpdateFunc holds a row lock for the read-modify-write so concurrent agents cannot lose updates.
func (r *TicketRepo) UpdateFunc(ctx context.Context, id string, fn func(t *domain.Ticket) error) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		t, err := scanTicket(tx.QueryRowContext(ctx, getTicketForUpdateSQL, id))
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTicketNotFound()
		}
		if err != nil {
			return domain.ErrDBUnavailable(err)
		}

		if err := fn(t); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, updateTicketSQL,
			t.ID, t.Title, t.Description, t.Name, nullable(t.AssignedTo),
			string(t.Status), string(t.Priority), t.Email, t.UpdatedAt,
		); err != nil {
			return mapWriteErr(err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TicketRepo) Delete(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, deleteTicketSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTicketNotFound()
	}
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return t, nil
}

func (r *TicketRepo) Stats(ctx context.Context, createdBy string) (domain.TicketStats, error) {
	query := `SELECT status, priority, COUNT(*) FROM tickets`
	var args []any
	if createdBy != "" {
		query += ` WHERE created_by = $1`
		args = append(args, createdBy)
	}
	query += ` GROUP BY status, priority`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.TicketStats{}, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	stats := domain.NewTicketStats()
	for rows.Next() {
		var status, priority string
		var n int
		if err := rows.Scan(&status, &priority, &n); err != nil {
			return domain.TicketStats{}, domain.ErrDBUnavailable(err)
		}
		stats.Total += n
		stats.ByStatus[domain.TicketStatus(status)] += n
		stats.ByPriority[domain.TicketPriority(priority)] += n
	}
	if err := rows.Err(); err != nil {
		return domain.TicketStats{}, domain.ErrDBUnavailable(err)
	}
	return stats, nil
}
