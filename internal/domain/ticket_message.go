package domain

import "time"

// MessageSender indicates who authored a message on a ticket thread.
// Closed variant so rendering and analytics can switch exhaustively.
type MessageSender string

const (
	SenderGuest       MessageSender = "guest"
	SenderManager     MessageSender = "manager"
	SenderAIAssistant MessageSender = "ai_assistant"
	SenderSystem      MessageSender = "system"
)

// IsValidSender reports whether s is a known sender role.
func IsValidSender(s MessageSender) bool {
	switch s {
	case SenderGuest, SenderManager, SenderAIAssistant, SenderSystem:
		return true
	default:
		return false
	}
}

// TicketMessage is one entry in a ticket's append-only thread.
type TicketMessage struct {
	ID         string
	TicketID   string
	Sender     MessageSender
	SenderName string
	Content    string
	CreatedAt  time.Time
}
