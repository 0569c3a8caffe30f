package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/api/dto"
	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/service"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// RoomsHandler serves the room collaborator endpoints.
type RoomsHandler struct {
	rooms *service.RoomService
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(rooms *service.RoomService) *RoomsHandler {
	return &RoomsHandler{rooms: rooms}
}

// ListRooms GET /rooms.
func (h *RoomsHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.rooms.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		items = append(items, dto.FromRoom(&rooms[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateRoom POST /rooms.
func (h *RoomsHandler) CreateRoom(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	room, err := h.rooms.Create(c.Context(), service.RoomCreateInput{
		Number: req.Number,
		Type:   req.Type,
		Floor:  req.Floor,
		Status: domain.RoomStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromRoom(room)})
}
