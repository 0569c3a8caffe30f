package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelops/guestdesk/internal/api/http/handlers"
	"github.com/hotelops/guestdesk/internal/auth"
	"github.com/hotelops/guestdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Chat           *handlers.ChatHandler
	Rooms          *handlers.RoomsHandler
	Realtime       *handlers.RealtimeHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Guest-facing endpoints are open; board
// mutations and the realtime channel require a staff token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	// Guest flow: no authentication.
	app.Post("/tickets/guest", cfg.Tickets.CreateGuestTicket)
	app.Post("/chat/ai", cfg.Chat.GuestTurn)
	app.Get("/rooms", cfg.Rooms.ListRooms)

	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Get("/tickets/:id", cfg.Tickets.GetTicket)
	app.Get("/tickets/:id/group", cfg.Tickets.GetTicketGroup)
	app.Post("/tickets/:id/messages", cfg.Tickets.AppendMessage)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Put("/tickets/:id", cfg.Tickets.UpdateTicket)
	protected.Put("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	protected.Post("/rooms", cfg.Rooms.CreateRoom)

	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.StaffRoleAdmin, domain.StaffRoleManager))
	admin.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)

	ws := app.Group("/ws", cfg.AuthMiddleware.Handle, auth.RequireRole())
	ws.Use("/managers", cfg.Realtime.Upgrade)
	ws.Get("/managers", cfg.Realtime.Serve())
}
