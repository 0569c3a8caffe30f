package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/events"
)

func boardTicket(id string, status domain.TicketStatus, createdAt time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		RoomNumber: "305",
		Category:   domain.CategoryHousekeeping,
		Guest:      domain.GuestInfo{Name: "Grace Hopper"},
		Status:     status,
		Subject:    "HOUSEKEEPING - Room 305",
		CreatedAt:  createdAt,
	}
}

func TestFirstSnapshotPrimesWithoutAlerts(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	alerts := r.ApplySnapshot([]domain.Ticket{
		boardTicket("a", domain.TicketStatusRaised, base),
		boardTicket("b", domain.TicketStatusInProgress, base),
	})
	require.Empty(t, alerts, "existing tickets predate the viewer")

	stats := r.Stats()
	require.Equal(t, 1, stats.Raised)
	require.Equal(t, 1, stats.InProgress)
	require.Equal(t, 2, stats.Total)
}

func TestSnapshotReplacesLocalState(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	r.ApplySnapshot([]domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)})

	// push moves the ticket forward locally
	updated := boardTicket("a", domain.TicketStatusInProgress, base)
	r.ApplyEvent(events.TicketEvent{Type: events.EventTicketUpdated, Ticket: &updated})
	require.Equal(t, 1, r.Stats().InProgress)

	// next pull says it is completed and that "a"'s sibling was deleted
	r.ApplySnapshot([]domain.Ticket{boardTicket("a", domain.TicketStatusCompleted, base)})
	stats := r.Stats()
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, 1, stats.Total, "snapshot fully replaces the view")
}

func TestApplyEventMovesTicketBetweenBucketsWithoutDuplication(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot(nil)

	created := boardTicket("a", domain.TicketStatusRaised, base)
	r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &created})
	require.Equal(t, 1, r.Stats().Raised)

	inProgress := boardTicket("a", domain.TicketStatusInProgress, base)
	r.ApplyEvent(events.TicketEvent{Type: events.EventTicketUpdated, Ticket: &inProgress})

	stats := r.Stats()
	require.Zero(t, stats.Raised)
	require.Equal(t, 1, stats.InProgress)
	require.Equal(t, 1, stats.Total, "ticket id is the sole identity key")
}

func TestNewTicketAlertFiresOncePerID(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot(nil)

	created := boardTicket("a", domain.TicketStatusRaised, base)
	alerts := r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &created})
	require.Len(t, alerts, 1)
	require.Equal(t, "a", alerts[0].TicketID)

	// the same ticket arriving again via push or pull stays quiet
	alerts = r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &created})
	require.Empty(t, alerts)
	alerts = r.ApplySnapshot([]domain.Ticket{created})
	require.Empty(t, alerts)
}

func TestGroupedTicketsCollapseIntoOneAlert(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot(nil)

	first := boardTicket("a", domain.TicketStatusRaised, base)
	second := boardTicket("b", domain.TicketStatusRaised, base.Add(time.Minute))
	second.Category = domain.CategoryServiceFB

	alerts := r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &first})
	require.Len(t, alerts, 1)

	alerts = r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &second})
	require.Empty(t, alerts, "same guest request, one toast")

	// an unrelated guest still alerts
	third := boardTicket("c", domain.TicketStatusRaised, base.Add(2*time.Minute))
	third.Guest.Name = "Ada Lovelace"
	third.RoomNumber = "101"
	alerts = r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &third})
	require.Len(t, alerts, 1)
}

func TestSnapshotAlertsForNewRaisedTicketsAfterPriming(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	r.ApplySnapshot([]domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)})

	// a raised ticket the push channel missed shows up on the next pull
	missed := boardTicket("b", domain.TicketStatusRaised, base.Add(time.Hour))
	alerts := r.ApplySnapshot([]domain.Ticket{
		boardTicket("a", domain.TicketStatusRaised, base),
		missed,
	})
	require.Len(t, alerts, 1)
	require.Equal(t, "b", alerts[0].TicketID)
}

func TestBucketsSortedNewestFirst(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	r.ApplySnapshot([]domain.Ticket{
		boardTicket("old", domain.TicketStatusRaised, base),
		boardTicket("new", domain.TicketStatusRaised, base.Add(time.Hour)),
	})

	buckets := r.Buckets()
	require.Len(t, buckets.Raised, 2)
	require.Equal(t, "new", buckets.Raised[0].ID)
	require.Equal(t, "old", buckets.Raised[1].ID)
}

func TestRemoveDropsTicket(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot([]domain.Ticket{boardTicket("a", domain.TicketStatusRaised, base)})

	r.Remove("a")
	require.Zero(t, r.Stats().Total)
}

func TestMultiServiceBanner(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	fb := boardTicket("a", domain.TicketStatusRaised, base)
	fb.Category = domain.CategoryServiceFB
	hk := boardTicket("b", domain.TicketStatusRaised, base.Add(time.Minute))
	solo := boardTicket("c", domain.TicketStatusRaised, base)
	solo.Guest.Name = "Ada Lovelace"
	solo.RoomNumber = "101"

	r.ApplySnapshot([]domain.Ticket{fb, hk, solo})

	require.True(t, r.MultiService("a"))
	require.True(t, r.MultiService("b"))
	require.False(t, r.MultiService("c"))
	require.False(t, r.MultiService("missing"))
}

func TestAlertStateDoesNotGrowWithTicketChurn(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot(nil)

	// A long run of guests raising tickets that later get completed and
	// cleaned off the board must not pile up suppression state.
	for i := 0; i < 200; i++ {
		ticket := boardTicket(fmt.Sprintf("ticket-%d", i),
			domain.TicketStatusRaised, base.Add(time.Duration(i)*time.Hour))
		ticket.Guest.Name = "Guest " + ticket.ID
		r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &ticket})
		r.ApplySnapshot([]domain.Ticket{ticket})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	require.LessOrEqual(t, len(r.alertHistory), 2, "history keeps only the recent window")
	require.LessOrEqual(t, len(r.alerted), 2, "alerted ids for departed tickets are dropped")
}

func TestLongLivedRaisedTicketNeverRealerts(t *testing.T) {
	r := NewReconciler()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.ApplySnapshot(nil)

	stuck := boardTicket("stuck", domain.TicketStatusRaised, base)
	alerts := r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket, Ticket: &stuck})
	require.Len(t, alerts, 1)

	// The ticket stays raised across many pulls while newer tickets age
	// the history out; its id must survive pruning.
	for i := 1; i <= 10; i++ {
		fresh := boardTicket("fresh", domain.TicketStatusRaised, base.Add(time.Duration(i)*time.Hour))
		fresh.Guest.Name = "Ada Lovelace"
		fresh.RoomNumber = "101"
		alerts = r.ApplySnapshot([]domain.Ticket{stuck, fresh})
		for _, alert := range alerts {
			require.NotEqual(t, "stuck", alert.TicketID)
		}
	}
}

func TestApplyEventNilTicketIgnored(t *testing.T) {
	r := NewReconciler()
	require.Empty(t, r.ApplyEvent(events.TicketEvent{Type: events.EventNewTicket}))
	require.Zero(t, r.Stats().Total)
}
