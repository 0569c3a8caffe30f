package events

import (
	"fmt"
	"time"

	"github.com/hotelops/guestdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventNewTicket     EventType = "newTicket"
	EventTicketUpdated EventType = "ticketUpdated"
)

// Notification is the human-readable summary delivered alongside the
// updated ticket on the managers channel.
type Notification struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketEvent carries the full updated ticket plus its notification
// summary. Delivery is at-most-once, best-effort; the periodic board pull
// is the correctness backstop for missed events.
type TicketEvent struct {
	ID           string         `json:"id"`
	Type         EventType      `json:"type"`
	Ticket       *domain.Ticket `json:"ticket"`
	Notification Notification   `json:"notification"`
}

// NewTicketEvent builds the fan-out payload for a freshly created ticket.
func NewTicketEvent(ticket *domain.Ticket) TicketEvent {
	return TicketEvent{
		Type:   EventNewTicket,
		Ticket: ticket,
		Notification: Notification{
			Title:     "New service request",
			Message:   fmt.Sprintf("%s from %s (Room %s)", ticket.Subject, ticket.Guest.Name, ticket.RoomNumber),
			Timestamp: time.Now(),
		},
	}
}

// TicketUpdatedEvent builds the fan-out payload after a status change or
// message append.
func TicketUpdatedEvent(ticket *domain.Ticket) TicketEvent {
	return TicketEvent{
		Type:   EventTicketUpdated,
		Ticket: ticket,
		Notification: Notification{
			Title:     "Ticket updated",
			Message:   fmt.Sprintf("%s is now %s", ticket.Subject, ticket.Status),
			Timestamp: time.Now(),
		},
	}
}
