package board

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fasthttp/websocket"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/events"
)

const (
	initialReconnectBackoff = time.Second
	maxReconnectBackoff     = 30 * time.Second

	// A connection that survived this long counts as healthy, so the
	// next failure starts the backoff ladder over.
	steadyConnection = 30 * time.Second
)

// Listener consumes push events from the managers websocket channel and
// feeds them into the reconciler. Connection loss triggers reconnects with
// backoff; state stays consistent meanwhile because the poller keeps
// pulling full snapshots.
type Listener struct {
	reconciler *Reconciler
	url        string
	onAlert    AlertFunc
	logger     *zap.Logger
	backoff    time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewListener builds a listener for the given websocket URL. The staff
// token travels in the URL's token query parameter.
func NewListener(reconciler *Reconciler, url string, onAlert AlertFunc, logger *zap.Logger) *Listener {
	return &Listener{
		reconciler: reconciler,
		url:        url,
		onAlert:    onAlert,
		logger:     logger,
		backoff:    initialReconnectBackoff,
	}
}

// Start runs the connect/read loop until Stop.
func (l *Listener) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		backoff := l.backoff
		for {
			if runCtx.Err() != nil {
				return
			}
			started := time.Now()
			if err := l.consume(runCtx); err != nil {
				l.logger.Warn("push channel lost; reconnecting",
					zap.Error(err),
					zap.Duration("backoff", backoff))
			}
			select {
			case <-runCtx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff, time.Since(started), l.backoff)
		}
	}()
}

// nextBackoff doubles the delay up to the cap, except after a connection
// that held for a while, which starts the ladder over at initial.
func nextBackoff(current, connected, initial time.Duration) time.Duration {
	if connected >= steadyConnection {
		return initial
	}
	next := current * 2
	if next > maxReconnectBackoff {
		next = maxReconnectBackoff
	}
	return next
}

// Stop tears down the listener.
func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
}

func (l *Listener) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	l.logger.Info("push channel connected")

	// The watchdog must not outlive this connection, one strays per
	// reconnect otherwise.
	readDone := make(chan struct{})
	defer close(readDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-readDone:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var event events.TicketEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			l.logger.Warn("discarding malformed push event", zap.Error(err))
			continue
		}
		alerts := l.reconciler.ApplyEvent(event)
		if len(alerts) > 0 && l.onAlert != nil {
			l.onAlert(alerts)
		}
	}
}
