package domain

import "time"

// StaffRole enumerates operator roles on the staff board.
type StaffRole string

const (
	StaffRoleManager StaffRole = "MANAGER"
	StaffRoleAdmin   StaffRole = "ADMIN"
)

// StaffAccount models a hotel manager with board access.
type StaffAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
