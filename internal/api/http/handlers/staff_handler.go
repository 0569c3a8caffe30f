package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/api/dto"
	"github.com/hotelops/guestdesk/internal/service"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// StaffHandler serves manager authentication.
type StaffHandler struct {
	authService *service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService) *StaffHandler {
	return &StaffHandler{authService: authService}
}

// Login POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, staff, err := h.authService.StaffLogin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.StaffLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      staff.Name,
		Role:      string(staff.Role),
	})
}
