package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/hotelops/guestdesk/internal/events"
)

// wsSession adapts a websocket connection to the Session interface.
// Writes are serialized; the underlying connection does not allow
// concurrent writers.
type wsSession struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewWSSession wraps an upgraded websocket connection.
func NewWSSession(conn *websocket.Conn) Session {
	return &wsSession{id: uuid.NewString(), conn: conn}
}

func (s *wsSession) ID() string {
	return s.id
}

func (s *wsSession) Send(event events.TicketEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(event)
}

func (s *wsSession) Close() error {
	return s.conn.Close()
}
