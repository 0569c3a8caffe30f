package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for guest service tickets.
type TicketStatus string

const (
	TicketStatusRaised     TicketStatus = "raised"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusCompleted  TicketStatus = "completed"
)

// IsValidStatus reports whether s is one of the three legal values. The
// workflow imposes no forward-only ordering: staff may reopen a completed
// ticket, so any legal value is reachable from any other.
func IsValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusRaised, TicketStatusInProgress, TicketStatusCompleted:
		return true
	default:
		return false
	}
}

// TicketPriority is advisory urgency supplied by classification.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	default:
		return false
	}
}

// ServiceCategory is the hotel department a ticket is routed to.
// Exactly one per ticket; a multi-category guest request produces
// multiple tickets, never a multi-valued field.
type ServiceCategory string

const (
	CategoryReception    ServiceCategory = "reception"
	CategoryHousekeeping ServiceCategory = "housekeeping"
	CategoryPorter       ServiceCategory = "porter"
	CategoryConcierge    ServiceCategory = "concierge"
	CategoryServiceFB    ServiceCategory = "service_fb"
	CategoryMaintenance  ServiceCategory = "maintenance"
)

// IsValidCategory reports whether c belongs to the closed category set.
func IsValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryReception, CategoryHousekeeping, CategoryPorter,
		CategoryConcierge, CategoryServiceFB, CategoryMaintenance:
		return true
	default:
		return false
	}
}

// GuestInfo identifies the requesting guest. Guests are not persisted
// entities; this is a value embedded in the ticket.
type GuestInfo struct {
	Name  string
	Email string
	Phone string
}

// Ticket is the aggregate for a single guest service request.
// Category is immutable after creation; only Status and Messages
// mutate post-creation.
type Ticket struct {
	ID          string
	RoomID      string
	RoomNumber  string
	Category    ServiceCategory
	Guest       GuestInfo
	Status      TicketStatus
	Subject     string
	Priority    TicketPriority
	Confidence  float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Messages    []TicketMessage
	// MultiService marks tickets whose correlation group spans more than
	// one department. Derived from the current ticket pool, never stored.
	MultiService bool
}

// TicketSubject derives the display label for a new ticket.
func TicketSubject(category ServiceCategory, roomNumber string) string {
	return fmt.Sprintf("%s - Room %s", strings.ToUpper(string(category)), roomNumber)
}
