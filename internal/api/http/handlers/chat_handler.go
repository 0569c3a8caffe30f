package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/api/dto"
	"github.com/hotelops/guestdesk/internal/service"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// ChatHandler serves the guest conversational endpoint.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// GuestTurn POST /chat/ai — one conversational turn. Guests never see raw
// error detail; a degraded classifier yields a generic assistant reply.
func (h *ChatHandler) GuestTurn(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	history := make([]service.ConversationTurn, 0, len(req.ConversationHistory))
	for _, turn := range req.ConversationHistory {
		history = append(history, service.ConversationTurn{Role: turn.Role, Content: turn.Content})
	}

	result := h.chat.HandleGuestTurn(c.Context(), service.GuestTurnInput{
		Message:    req.Message,
		RoomNumber: req.RoomNumber,
		Guest:      guestFromPayload(req.GuestInfo),
		History:    history,
	})

	resp := dto.ChatResponse{
		Message:             result.Reply,
		ShouldCreateTicket:  result.Classification.ShouldCreateTicket,
		Confidence:          result.Classification.Confidence,
		Reasoning:           result.Classification.Reasoning,
		Priority:            string(result.Classification.SuggestedPriority),
		EstimatedCompletion: result.Classification.EstimatedCompletion,
		TicketCount:         result.Report.Created,
	}
	for _, category := range result.Report.Categories {
		resp.Categories = append(resp.Categories, string(category))
	}
	return c.JSON(resp)
}
