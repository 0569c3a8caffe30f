package dto

// ChatTurn is one prior exchange in the guest conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a guest conversational turn.
type ChatRequest struct {
	Message             string           `json:"message"`
	RoomNumber          string           `json:"roomNumber"`
	GuestInfo           GuestInfoPayload `json:"guestInfo"`
	ConversationHistory []ChatTurn       `json:"conversationHistory"`
}

// ChatResponse is the assistant's reply plus classification outcome.
type ChatResponse struct {
	Message             string   `json:"message"`
	ShouldCreateTicket  bool     `json:"shouldCreateTicket"`
	Categories          []string `json:"categories"`
	Confidence          float64  `json:"confidence"`
	Reasoning           string   `json:"reasoning"`
	Priority            string   `json:"priority"`
	EstimatedCompletion *string  `json:"estimatedCompletion,omitempty"`
	TicketCount         int      `json:"ticketCount"`
}
