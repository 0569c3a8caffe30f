package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/events"
	"github.com/hotelops/guestdesk/internal/repository"
)

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	// failCategories simulates per-category persistence failures.
	failCategories map[domain.ServiceCategory]error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:        make(map[string]domain.Ticket),
		failCategories: make(map[domain.ServiceCategory]error),
	}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failCategories[ticket.Category]; ok {
		return err
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	stored := *ticket
	stored.Messages = nil
	r.tickets[ticket.ID] = stored
	return nil
}

func (r *fakeTicketRepo) UpdateStatus(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.CompletedAt = ticket.CompletedAt
	stored.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = stored
	ticket.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeTicketRepo) Touch(ctx context.Context, ticketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.UpdatedAt = time.Now()
	r.tickets[ticketID] = stored
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := stored
	return &copy, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		result = append(result, ticket)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string][]domain.TicketMessage
	failNext error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string][]domain.TicketMessage)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *domain.TicketMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	msg.CreatedAt = time.Now()
	r.messages[msg.TicketID] = append(r.messages[msg.TicketID], *msg)
	return nil
}

func (r *fakeMessageRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TicketMessage(nil), r.messages[ticketID]...), nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]domain.Room
}

func newFakeRoomRepo(rooms ...domain.Room) *fakeRoomRepo {
	repo := &fakeRoomRepo{rooms: make(map[string]domain.Room)}
	for _, room := range rooms {
		repo.rooms[room.Number] = room
	}
	return repo
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room.ID == "" {
		room.ID = "room-" + room.Number
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	r.rooms[room.Number] = *room
	return nil
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == id {
			copy := room
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRoomRepo) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := room
	return &copy, nil
}

func (r *fakeRoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Room
	for _, room := range r.rooms {
		result = append(result, room)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.TicketEvent
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.TicketEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.TicketEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.TicketEvent(nil), d.events...)
}
