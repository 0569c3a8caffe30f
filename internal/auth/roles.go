package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/domain"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// RequireRole ensures the staff principal has one of the allowed roles.
// With no arguments it only requires an authenticated staff member.
func RequireRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewForbidden("staff required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
