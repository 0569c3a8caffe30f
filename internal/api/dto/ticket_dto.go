package dto

import (
	"time"

	"github.com/hotelops/guestdesk/internal/domain"
)

// GuestInfoPayload carries guest identity on requests and responses.
type GuestInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CreateTicketRequest is the manager-initiated creation payload.
type CreateTicketRequest struct {
	RoomNumber     string           `json:"roomNumber"`
	GuestInfo      GuestInfoPayload `json:"guestInfo"`
	Category       string           `json:"category"`
	InitialMessage string           `json:"initialMessage"`
	Priority       string           `json:"priority,omitempty"`
}

// GuestTicketRequest is the guest-flow creation payload.
type GuestTicketRequest struct {
	RoomNumber     string           `json:"roomNumber"`
	GuestInfo      GuestInfoPayload `json:"guestInfo"`
	InitialMessage string           `json:"initialMessage"`
}

// UpdateTicketRequest updates status and/or appends a manager response.
type UpdateTicketRequest struct {
	Status          string `json:"status,omitempty"`
	ResponseMessage string `json:"responseMessage,omitempty"`
	ResponderName   string `json:"responderName,omitempty"`
}

// UpdateStatusRequest is the status-only transition payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppendMessageRequest appends one message to a ticket thread.
type AppendMessageRequest struct {
	Content    string `json:"content"`
	Sender     string `json:"sender"`
	SenderName string `json:"senderName"`
}

// MessageResponse is one thread entry.
type MessageResponse struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TicketResponse is the full ticket shape returned everywhere.
type TicketResponse struct {
	ID          string            `json:"id"`
	RoomID      string            `json:"roomId"`
	RoomNumber  string            `json:"roomNumber"`
	Category    string            `json:"category"`
	GuestInfo   GuestInfoPayload  `json:"guestInfo"`
	Status      string            `json:"status"`
	Subject     string            `json:"subject"`
	Priority    string            `json:"priority"`
	Confidence  float64           `json:"confidence"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
	MultiService bool              `json:"multiService"`
	Messages     []MessageResponse `json:"messages,omitempty"`
}

// GuestTicketResponse reports the outcome of a guest-flow creation.
type GuestTicketResponse struct {
	Data               []TicketResponse `json:"data"`
	TicketCount        int              `json:"ticketCount"`
	Categories         []string         `json:"categories"`
	ShouldCreateTicket bool             `json:"shouldCreateTicket"`
	IsGreeting         bool             `json:"isGreeting,omitempty"`
	Message            string           `json:"message,omitempty"`
}

// FromTicket maps a domain ticket to its response shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:         ticket.ID,
		RoomID:     ticket.RoomID,
		RoomNumber: ticket.RoomNumber,
		Category:   string(ticket.Category),
		GuestInfo: GuestInfoPayload{
			Name:  ticket.Guest.Name,
			Email: ticket.Guest.Email,
			Phone: ticket.Guest.Phone,
		},
		Status:       string(ticket.Status),
		Subject:      ticket.Subject,
		Priority:     string(ticket.Priority),
		Confidence:   ticket.Confidence,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		CompletedAt:  ticket.CompletedAt,
		MultiService: ticket.MultiService,
	}
	for i := range ticket.Messages {
		msg := &ticket.Messages[i]
		resp.Messages = append(resp.Messages, MessageResponse{
			ID:         msg.ID,
			Sender:     string(msg.Sender),
			SenderName: msg.SenderName,
			Content:    msg.Content,
			CreatedAt:  msg.CreatedAt,
		})
	}
	return resp
}

// ToTicket maps a response shape back to a domain ticket. The board
// reconciler uses this when consuming snapshots and push events.
func (t TicketResponse) ToTicket() domain.Ticket {
	ticket := domain.Ticket{
		ID:         t.ID,
		RoomID:     t.RoomID,
		RoomNumber: t.RoomNumber,
		Category:   domain.ServiceCategory(t.Category),
		Guest: domain.GuestInfo{
			Name:  t.GuestInfo.Name,
			Email: t.GuestInfo.Email,
			Phone: t.GuestInfo.Phone,
		},
		Status:       domain.TicketStatus(t.Status),
		Subject:      t.Subject,
		Priority:     domain.TicketPriority(t.Priority),
		Confidence:   t.Confidence,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		CompletedAt:  t.CompletedAt,
		MultiService: t.MultiService,
	}
	for _, msg := range t.Messages {
		ticket.Messages = append(ticket.Messages, domain.TicketMessage{
			ID:         msg.ID,
			TicketID:   t.ID,
			Sender:     domain.MessageSender(msg.Sender),
			SenderName: msg.SenderName,
			Content:    msg.Content,
			CreatedAt:  msg.CreatedAt,
		})
	}
	return ticket
}
