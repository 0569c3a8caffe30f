package board

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/domain"
)

func TestPollerPullsImmediatelyAndPeriodically(t *testing.T) {
	var pulls atomic.Int64
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fetch := func(ctx context.Context) (*Snapshot, error) {
		pulls.Add(1)
		return &Snapshot{
			Tickets: []domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)},
			Rooms:   []domain.Room{{ID: "room-305", Number: "305"}},
		}, nil
	}

	reconciler := NewReconciler()
	poller := NewPoller(reconciler, fetch, nil, 20*time.Millisecond, zap.NewNop())
	poller.Start(context.Background())
	defer poller.Stop()

	require.Eventually(t, func() bool {
		return pulls.Load() >= 2
	}, time.Second, 5*time.Millisecond, "immediate pull plus at least one tick")

	require.Equal(t, 1, reconciler.Stats().Raised)
	require.Len(t, reconciler.Rooms(), 1)
}

func TestPollerFailedPullKeepsPreviousView(t *testing.T) {
	var pulls atomic.Int64
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fetch := func(ctx context.Context) (*Snapshot, error) {
		if pulls.Add(1) > 1 {
			return nil, errors.New("connection refused")
		}
		return &Snapshot{
			Tickets: []domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)},
		}, nil
	}

	reconciler := NewReconciler()
	poller := NewPoller(reconciler, fetch, nil, 10*time.Millisecond, zap.NewNop())
	poller.Start(context.Background())

	require.Eventually(t, func() bool {
		return pulls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
	poller.Stop()

	require.Equal(t, 1, reconciler.Stats().Raised, "failed pulls never clear the board")
}

func TestPollerDeliversAlertsFromPulls(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var pulls atomic.Int64
	fetch := func(ctx context.Context) (*Snapshot, error) {
		n := pulls.Add(1)
		snapshot := &Snapshot{
			Tickets: []domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)},
		}
		if n > 1 {
			missed := boardTicket("b", domain.TicketStatusRaised, base.Add(time.Hour))
			missed.Guest.Name = "Ada Lovelace"
			snapshot.Tickets = append(snapshot.Tickets, missed)
		}
		return snapshot, nil
	}

	var mu sync.Mutex
	var received []Alert
	onAlert := func(alerts []Alert) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, alerts...)
	}

	poller := NewPoller(NewReconciler(), fetch, onAlert, 10*time.Millisecond, zap.NewNop())
	poller.Start(context.Background())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 5*time.Millisecond)
	poller.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "b", received[0].TicketID, "priming pull stays silent; later pulls alert")
}

func TestPollerStopTerminatesLoop(t *testing.T) {
	var pulls atomic.Int64
	fetch := func(ctx context.Context) (*Snapshot, error) {
		pulls.Add(1)
		return &Snapshot{}, nil
	}

	poller := NewPoller(NewReconciler(), fetch, nil, 5*time.Millisecond, zap.NewNop())
	poller.Start(context.Background())
	require.Eventually(t, func() bool { return pulls.Load() >= 1 }, time.Second, time.Millisecond)
	poller.Stop()

	settled := pulls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, settled, pulls.Load(), "no pulls after Stop returns")
}
