package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotelops/guestdesk/internal/domain"
)

// RoomRepository owns room records. Ticket operations read rooms for
// existence checks but never mutate them.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	GetByNumber(ctx context.Context, number string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository instantiates repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (number, type, floor, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		room.Number,
		room.Type,
		room.Floor,
		room.Status,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	const query = `
        SELECT id, number, type, floor, status, created_at, updated_at
        FROM rooms WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *roomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	const query = `
        SELECT id, number, type, floor, status, created_at, updated_at
        FROM rooms WHERE number=$1`
	return r.fetchSingle(ctx, query, number)
}

func (r *roomRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Room, error) {
	var room domain.Room
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&room.ID,
		&room.Number,
		&room.Type,
		&room.Floor,
		&room.Status,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	const query = `
        SELECT id, number, type, floor, status, created_at, updated_at
        FROM rooms ORDER BY number ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func scanRooms(rows pgx.Rows) ([]domain.Room, error) {
	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID,
			&room.Number,
			&room.Type,
			&room.Floor,
			&room.Status,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}
