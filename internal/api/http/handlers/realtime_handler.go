package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/realtime"
)

// RealtimeHandler upgrades staff connections into the managers group.
type RealtimeHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewRealtimeHandler constructs handler.
func NewRealtimeHandler(hub *realtime.Hub, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, logger: logger}
}

// Upgrade gates non-websocket requests before the upgrade handler runs.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve GET /ws/managers — joins the session to the hub until the
// connection closes. The client reads events only; inbound frames are
// drained to detect disconnect. Reconnecting clients rely on the next
// scheduled board pull to resynchronize, not on event replay.
func (h *RealtimeHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		session := realtime.NewWSSession(conn)
		h.hub.Join(session)
		defer h.hub.Leave(session.ID())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.logger.Debug("manager session closed",
					zap.String("session_id", session.ID()),
					zap.Error(err))
				return
			}
		}
	})
}
