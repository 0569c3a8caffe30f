package dto

import (
	"time"

	"github.com/hotelops/guestdesk/internal/domain"
)

// CreateRoomRequest registers a room.
type CreateRoomRequest struct {
	Number string `json:"number"`
	Type   string `json:"type"`
	Floor  int    `json:"floor"`
	Status string `json:"status,omitempty"`
}

// RoomResponse is the room shape returned to clients.
type RoomResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Floor     int       `json:"floor"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromRoom maps a domain room to its response shape.
func FromRoom(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID,
		Number:    room.Number,
		Type:      room.Type,
		Floor:     room.Floor,
		Status:    string(room.Status),
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}
