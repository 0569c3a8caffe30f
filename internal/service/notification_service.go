package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/events"
	"github.com/hotelops/guestdesk/internal/realtime"
)

// NotificationService fans ticket events out to connected staff sessions.
// It subscribes to the dispatcher, so fan-out is ordered after the store
// write that produced each event.
type NotificationService struct {
	dispatcher events.Dispatcher
	bridge     *realtime.Bridge
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, bridge *realtime.Bridge, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		bridge:     bridge,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventNewTicket, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketEvent)
}

func (n *NotificationService) handleTicketEvent(ctx context.Context, event events.TicketEvent) error {
	if event.Ticket == nil {
		return nil
	}
	n.logger.Info("fan-out",
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.Ticket.ID),
		zap.String("status", string(event.Ticket.Status)))
	n.bridge.Publish(ctx, event)
	return nil
}
