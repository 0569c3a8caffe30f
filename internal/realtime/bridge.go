package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/events"
)

// envelope wraps a ticket event on the wire so instances can discard
// their own publications.
type envelope struct {
	Origin string             `json:"origin"`
	Event  events.TicketEvent `json:"event"`
}

// Bridge relays ticket events between instances over a redis channel so
// managers connected to any instance see every event. Lost messages are
// acceptable: the board's periodic pull is the correctness backstop.
type Bridge struct {
	client   *redis.Client
	channel  string
	instance string
	hub      *Hub
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewBridge creates a bridge bound to a hub. A nil redis client disables
// cross-instance relay; local broadcast still works.
func NewBridge(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		hub:      hub,
		logger:   logger,
	}
}

// Publish broadcasts locally and relays the event to peer instances.
func (b *Bridge) Publish(ctx context.Context, event events.TicketEvent) {
	b.hub.Broadcast(event)

	if b.client == nil {
		return
	}
	payload, err := json.Marshal(envelope{Origin: b.instance, Event: event})
	if err != nil {
		b.logger.Error("marshal fan-out envelope", zap.Error(err))
		return
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.Warn("redis publish failed; event delivered locally only",
			zap.Error(err),
			zap.String("event_type", string(event.Type)))
	}
}

// Start subscribes to the redis channel and forwards peer events into the
// local hub until Stop is called.
func (b *Bridge) Start(ctx context.Context) {
	if b.client == nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = make(chan struct{})

	sub := b.client.Subscribe(runCtx, b.channel)
	go func() {
		defer close(b.done)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-runCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				b.relay(msg.Payload)
			}
		}
	}()
}

// Stop tears down the subscription.
func (b *Bridge) Stop() {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
}

func (b *Bridge) relay(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		b.logger.Warn("discarding malformed fan-out envelope", zap.Error(err))
		return
	}
	if env.Origin == b.instance {
		return
	}
	b.hub.Broadcast(env.Event)
}
