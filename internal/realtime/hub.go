// Package realtime pushes ticket events to connected staff sessions.
// All managers share one group; delivery is at-most-once and best-effort.
package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/events"
	"github.com/hotelops/guestdesk/internal/observability"
)

// Session is one connected staff client.
type Session interface {
	ID() string
	Send(event events.TicketEvent) error
	Close() error
}

// Hub owns the registry of currently connected manager sessions, with
// explicit Join/Leave tied to connection open/close.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]Session
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		sessions: make(map[string]Session),
		logger:   logger,
		metrics:  metrics,
	}
}

// Join registers a session.
func (h *Hub) Join(session Session) {
	h.mu.Lock()
	h.sessions[session.ID()] = session
	count := len(h.sessions)
	h.mu.Unlock()
	h.logger.Info("manager session joined",
		zap.String("session_id", session.ID()),
		zap.Int("connected", count))
}

// Leave removes a session. Safe to call for an already-removed session.
func (h *Hub) Leave(sessionID string) {
	h.mu.Lock()
	_, present := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	count := len(h.sessions)
	h.mu.Unlock()
	if present {
		h.logger.Info("manager session left",
			zap.String("session_id", sessionID),
			zap.Int("connected", count))
	}
}

// SessionCount reports current connections.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast delivers an event to every connected session. A failed send
// evicts the session; the client's next scheduled pull resynchronizes it.
func (h *Hub) Broadcast(event events.TicketEvent) {
	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		targets = append(targets, session)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, session := range targets {
		if err := session.Send(event); err != nil {
			h.logger.Warn("dropping unreachable session",
				zap.String("session_id", session.ID()),
				zap.Error(err))
			_ = session.Close()
			h.Leave(session.ID())
			continue
		}
		delivered++
	}
	h.metrics.RecordFanout(string(event.Type), delivered)
}
