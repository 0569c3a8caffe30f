package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/api/dto"
	"github.com/hotelops/guestdesk/internal/auth"
	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/service"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// TicketsHandler manages ticket endpoints for both guest flow and board.
type TicketsHandler struct {
	tickets *service.TicketService
	chat    *service.ChatService
	rooms   *service.RoomService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, chat *service.ChatService, rooms *service.RoomService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, chat: chat, rooms: rooms}
}

// CreateTicket POST /tickets — manager-initiated direct creation.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RoomNumber == "" || req.GuestInfo.Name == "" || req.Category == "" {
		return apperrors.NewValidationError("roomNumber, guestInfo.name, category required", nil)
	}

	ticket, err := h.tickets.Create(c.Context(), service.CreateInput{
		RoomNumber:     req.RoomNumber,
		Guest:          guestFromPayload(req.GuestInfo),
		Category:       domain.ServiceCategory(req.Category),
		InitialMessage: req.InitialMessage,
		Priority:       domain.TicketPriority(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// CreateGuestTicket POST /tickets/guest — classification-driven creation.
// 404 when the room is unknown; 200 with isGreeting when the classifier
// declines; 201 with the created tickets otherwise.
func (h *TicketsHandler) CreateGuestTicket(c *fiber.Ctx) error {
	var req dto.GuestTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RoomNumber == "" || req.GuestInfo.Name == "" || strings.TrimSpace(req.InitialMessage) == "" {
		return apperrors.NewValidationError("roomNumber, guestInfo.name, initialMessage required", nil)
	}

	if _, err := h.rooms.GetByNumber(c.Context(), req.RoomNumber); err != nil {
		return err
	}

	result := h.chat.ClassifyAndCreate(c.Context(), req.RoomNumber, guestFromPayload(req.GuestInfo), req.InitialMessage)
	if result.IsGreeting {
		return c.Status(http.StatusOK).JSON(dto.GuestTicketResponse{
			ShouldCreateTicket: false,
			IsGreeting:         true,
			Message:            result.Reply,
		})
	}

	resp := dto.GuestTicketResponse{
		TicketCount:        result.Report.Created,
		ShouldCreateTicket: true,
		Message:            result.Reply,
	}
	for i := range result.Report.Tickets {
		resp.Data = append(resp.Data, dto.FromTicket(&result.Report.Tickets[i]))
	}
	for _, category := range result.Report.Categories {
		resp.Categories = append(resp.Categories, string(category))
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// ListTickets GET /tickets?status=&category= — newest first.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.tickets.List(c.Context(), service.TicketFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// GetTicketGroup GET /tickets/:id/group — the tickets raised together
// with this one, for the multi-service banner.
func (h *TicketsHandler) GetTicketGroup(c *fiber.Ctx) error {
	group, err := h.tickets.Group(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(group))
	for i := range group {
		items = append(items, dto.FromTicket(&group[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateTicket PUT /tickets/:id — status change and/or manager response.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" && strings.TrimSpace(req.ResponseMessage) == "" {
		return apperrors.NewValidationError("status or responseMessage required", nil)
	}

	var status *domain.TicketStatus
	if req.Status != "" {
		s := domain.TicketStatus(req.Status)
		status = &s
	}
	responderName := req.ResponderName
	if responderName == "" {
		if principal, ok := auth.PrincipalFromContext(c); ok && principal.Staff != nil {
			responderName = principal.Staff.Name
		}
	}

	ticket, err := h.tickets.Update(c.Context(), c.Params("id"), status, req.ResponseMessage, responderName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// UpdateStatus PUT /tickets/:id/status — status-only transition.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.SetStatus(c.Context(), c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// AppendMessage POST /tickets/:id/messages.
func (h *TicketsHandler) AppendMessage(c *fiber.Ctx) error {
	var req dto.AppendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}
	sender := domain.MessageSender(req.Sender)
	if req.Sender == "" {
		sender = domain.SenderGuest
	}

	ticket, err := h.tickets.AppendMessage(c.Context(), c.Params("id"), req.Content, sender, req.SenderName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// DeleteTicket DELETE /tickets/:id — permanent.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.tickets.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func guestFromPayload(payload dto.GuestInfoPayload) domain.GuestInfo {
	return domain.GuestInfo{
		Name:  strings.TrimSpace(payload.Name),
		Email: strings.TrimSpace(payload.Email),
		Phone: strings.TrimSpace(payload.Phone),
	}
}
