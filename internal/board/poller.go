package board

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SnapshotFunc pulls the current full server state.
type SnapshotFunc func(ctx context.Context) (*Snapshot, error)

// AlertFunc receives toasts produced by reconciliation.
type AlertFunc func(alerts []Alert)

// Poller drives the periodic full-refresh backstop: an immediate pull at
// startup, then one per interval until Stop. A failed pull keeps the
// previous view; the next tick retries.
type Poller struct {
	reconciler *Reconciler
	fetch      SnapshotFunc
	onAlert    AlertFunc
	interval   time.Duration
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewPoller builds a poller bound to a reconciler.
func NewPoller(reconciler *Reconciler, fetch SnapshotFunc, onAlert AlertFunc, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Poller{
		reconciler: reconciler,
		fetch:      fetch,
		onAlert:    onAlert,
		interval:   interval,
		logger:     logger,
	}
}

// Start launches the poll loop.
func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.pull(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.pull(runCtx)
			}
		}
	}()
}

// Stop tears down the loop; no orphaned timers remain after return.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}

func (p *Poller) pull(ctx context.Context) {
	snapshot, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("board pull failed; keeping previous view", zap.Error(err))
		return
	}
	alerts := p.reconciler.ApplySnapshot(snapshot.Tickets)
	p.reconciler.SetRooms(snapshot.Rooms)
	if len(alerts) > 0 && p.onAlert != nil {
		p.onAlert(alerts)
	}
}
