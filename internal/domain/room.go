package domain

import "time"

// RoomStatus enumerates occupancy states.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// IsValidRoomStatus reports whether s is a known room status.
func IsValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	default:
		return false
	}
}

// Room is referenced by tickets and never mutated by ticket operations.
type Room struct {
	ID        string
	Number    string
	Type      string
	Floor     int
	Status    RoomStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
