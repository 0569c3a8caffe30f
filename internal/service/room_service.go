package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/repository"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// RoomService owns the room collaborator surface. Tickets only read rooms
// for existence checks.
type RoomService struct {
	rooms repository.RoomRepository
}

// NewRoomService constructs the service.
func NewRoomService(rooms repository.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// RoomCreateInput describes a new room.
type RoomCreateInput struct {
	Number string
	Type   string
	Floor  int
	Status domain.RoomStatus
}

// Create registers a room.
func (s *RoomService) Create(ctx context.Context, input RoomCreateInput) (*domain.Room, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, apperrors.NewValidationError("room number required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.RoomStatusAvailable
	}
	if !domain.IsValidRoomStatus(status) {
		return nil, apperrors.NewValidationError("unknown room status", map[string]any{"status": status})
	}
	roomType := strings.TrimSpace(input.Type)
	if roomType == "" {
		roomType = "standard"
	}

	room := &domain.Room{
		Number: number,
		Type:   roomType,
		Floor:  input.Floor,
		Status: status,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	return room, nil
}

// GetByNumber resolves a room for existence checks.
func (s *RoomService) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	room, err := s.rooms.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"roomNumber": number})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	return room, nil
}

// List returns all rooms ordered by number.
func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	return rooms, nil
}
