// Package board maintains the staff-facing view of all tickets. Two
// independent producers feed one reducer keyed by ticket id: push events
// from the realtime channel and periodic full snapshots. The snapshot is
// the source of truth and always wins over local state.
package board

import (
	"sort"
	"sync"
	"time"

	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/events"
)

// Alert is a "new ticket" toast. Fired at most once per ticket id, with
// same-group tickets collapsed into the first member's alert.
type Alert struct {
	TicketID string
	Title    string
	Message  string
}

// Buckets holds the three status columns, each newest-created first.
type Buckets struct {
	Raised     []domain.Ticket
	InProgress []domain.Ticket
	Completed  []domain.Ticket
}

// Stats summarizes bucket sizes.
type Stats struct {
	Raised     int
	InProgress int
	Completed  int
	Total      int
}

// Reconciler merges snapshots and push events into one consistent view.
// Ticket id is the sole identity key; a ticket is never present in more
// than one bucket.
type Reconciler struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	rooms   []domain.Room
	// alerted tracks tickets whose arrival has already produced (or been
	// suppressed into) a toast, so reconnects and pull/push races never
	// re-fire alerts.
	alerted map[string]struct{}
	// alertHistory keeps alerted tickets for group suppression checks.
	alertHistory []domain.Ticket
	primed       bool
}

// NewReconciler creates an empty board state.
func NewReconciler() *Reconciler {
	return &Reconciler{
		tickets: make(map[string]domain.Ticket),
		alerted: make(map[string]struct{}),
	}
}

// ApplySnapshot fully replaces local ticket state with the pulled list and
// returns alerts for genuinely new raised tickets. The very first snapshot
// primes the board without alerting; everything in it predates the viewer.
func (r *Reconciler) ApplySnapshot(tickets []domain.Ticket) []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]domain.Ticket, len(tickets))
	for i := range tickets {
		replacement[tickets[i].ID] = tickets[i]
	}

	var alerts []Alert
	for i := range tickets {
		t := &tickets[i]
		if t.Status != domain.TicketStatusRaised {
			continue
		}
		if r.primed {
			alerts = append(alerts, r.maybeAlertLocked(t)...)
		} else {
			r.markAlertedLocked(t)
		}
	}

	r.tickets = replacement
	r.primed = true
	r.pruneAlertStateLocked()
	return alerts
}

// ApplyEvent upserts a single ticket from a push event without waiting for
// the next pull. Returns an alert when the event reveals a new raised
// ticket the viewer has not been told about.
func (r *Reconciler) ApplyEvent(event events.TicketEvent) []Alert {
	if event.Ticket == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket := *event.Ticket
	r.tickets[ticket.ID] = ticket

	if event.Type == events.EventNewTicket && ticket.Status == domain.TicketStatusRaised {
		return r.maybeAlertLocked(&ticket)
	}
	return nil
}

// Remove drops a deleted ticket from the view.
func (r *Reconciler) Remove(ticketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tickets, ticketID)
}

// SetRooms replaces the room list from a pull.
func (r *Reconciler) SetRooms(rooms []domain.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = rooms
}

// Rooms returns the last pulled room list.
func (r *Reconciler) Rooms() []domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Room(nil), r.rooms...)
}

// Buckets derives the three status columns, newest-created first.
func (r *Reconciler) Buckets() Buckets {
	r.mu.Lock()
	defer r.mu.Unlock()

	var buckets Buckets
	for _, ticket := range r.tickets {
		switch ticket.Status {
		case domain.TicketStatusRaised:
			buckets.Raised = append(buckets.Raised, ticket)
		case domain.TicketStatusInProgress:
			buckets.InProgress = append(buckets.InProgress, ticket)
		case domain.TicketStatusCompleted:
			buckets.Completed = append(buckets.Completed, ticket)
		}
	}
	sortNewestFirst(buckets.Raised)
	sortNewestFirst(buckets.InProgress)
	sortNewestFirst(buckets.Completed)
	return buckets
}

// Stats reports bucket sizes.
func (r *Reconciler) Stats() Stats {
	buckets := r.Buckets()
	return Stats{
		Raised:     len(buckets.Raised),
		InProgress: len(buckets.InProgress),
		Completed:  len(buckets.Completed),
		Total:      len(buckets.Raised) + len(buckets.InProgress) + len(buckets.Completed),
	}
}

// MultiService reports whether the ticket's group spans departments,
// driving the multi-service banner on its card.
func (r *Reconciler) MultiService(ticketID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[ticketID]
	if !ok {
		return false
	}
	pool := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		pool = append(pool, t)
	}
	return domain.IsMultiService(&ticket, pool)
}

func (r *Reconciler) maybeAlertLocked(ticket *domain.Ticket) []Alert {
	if _, done := r.alerted[ticket.ID]; done {
		return nil
	}
	suppressed := false
	for i := range r.alertHistory {
		if domain.SameGroup(ticket, &r.alertHistory[i]) {
			suppressed = true
			break
		}
	}
	r.markAlertedLocked(ticket)
	if suppressed {
		return nil
	}
	return []Alert{{
		TicketID: ticket.ID,
		Title:    "New service request",
		Message:  ticket.Subject,
	}}
}

// pruneAlertStateLocked discards suppression state that can no longer
// matter. Group suppression only looks back one correlation window, so
// history entries older than twice the window (measured against the
// newest ticket seen) are dead weight, and an alerted id is only needed
// while its ticket is on the board or still in recent history.
func (r *Reconciler) pruneAlertStateLocked() {
	var newest time.Time
	for _, t := range r.tickets {
		if t.CreatedAt.After(newest) {
			newest = t.CreatedAt
		}
	}
	for i := range r.alertHistory {
		if r.alertHistory[i].CreatedAt.After(newest) {
			newest = r.alertHistory[i].CreatedAt
		}
	}
	cutoff := newest.Add(-2 * domain.GroupWindow)

	kept := r.alertHistory[:0]
	recent := make(map[string]struct{}, len(r.alertHistory))
	for i := range r.alertHistory {
		if r.alertHistory[i].CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, r.alertHistory[i])
		recent[r.alertHistory[i].ID] = struct{}{}
	}
	r.alertHistory = kept

	for id := range r.alerted {
		if _, onBoard := r.tickets[id]; onBoard {
			continue
		}
		if _, ok := recent[id]; ok {
			continue
		}
		delete(r.alerted, id)
	}
}

func (r *Reconciler) markAlertedLocked(ticket *domain.Ticket) {
	if _, done := r.alerted[ticket.ID]; done {
		return
	}
	r.alerted[ticket.ID] = struct{}{}
	r.alertHistory = append(r.alertHistory, *ticket)
}

func sortNewestFirst(tickets []domain.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}
