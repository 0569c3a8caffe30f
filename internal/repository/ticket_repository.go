package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelops/guestdesk/internal/domain"
)

// TicketFilter captures board listing parameters.
type TicketFilter struct {
	Status   *domain.TicketStatus
	Category *domain.ServiceCategory
}

// TicketRepository encapsulates ticket persistence. It is the only writer
// of ticket state; status updates are single-row UPDATEs so concurrent
// writers serialize at the row level (last write wins).
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	UpdateStatus(ctx context.Context, ticket *domain.Ticket) error
	Touch(ctx context.Context, ticketID string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, room_id, room_number, category, guest_name, guest_email, guest_phone,
                             status, subject, priority, confidence)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.RoomID,
		ticket.RoomNumber,
		ticket.Category,
		ticket.Guest.Name,
		ticket.Guest.Email,
		ticket.Guest.Phone,
		ticket.Status,
		ticket.Subject,
		ticket.Priority,
		ticket.Confidence,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
}

// UpdateStatus persists status and completed_at only; category and guest
// fields are immutable after creation and deliberately absent here.
func (r *ticketRepository) UpdateStatus(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, completed_at=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		ticket.Status,
		ticket.CompletedAt,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
	if err == pgx.ErrNoRows {
		return pgx.ErrNoRows
	}
	return err
}

// Touch bumps updated_at after a message append.
func (r *ticketRepository) Touch(ctx context.Context, ticketID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE tickets SET updated_at=NOW() WHERE id=$1`, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, room_id, room_number, category, guest_name, guest_email, guest_phone,
               status, subject, priority, confidence, created_at, updated_at, completed_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.RoomID,
		&ticket.RoomNumber,
		&ticket.Category,
		&ticket.Guest.Name,
		&ticket.Guest.Email,
		&ticket.Guest.Phone,
		&ticket.Status,
		&ticket.Subject,
		&ticket.Priority,
		&ticket.Confidence,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, room_id, room_number, category, guest_name, guest_email, guest_phone,
                    status, subject, priority, confidence, created_at, updated_at, completed_at
             FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.RoomID,
			&ticket.RoomNumber,
			&ticket.Category,
			&ticket.Guest.Name,
			&ticket.Guest.Email,
			&ticket.Guest.Phone,
			&ticket.Status,
			&ticket.Subject,
			&ticket.Priority,
			&ticket.Confidence,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.CompletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
