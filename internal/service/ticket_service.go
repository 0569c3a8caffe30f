package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/events"
	"github.com/hotelops/guestdesk/internal/repository"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle. It is the only writer of
// ticket state; fan-out events are emitted strictly after the store write
// that produced them.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	rooms      repository.RoomRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.TicketMessageRepository
	RoomRepo    repository.RoomRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// CreateInput describes one ticket to create.
type CreateInput struct {
	RoomNumber     string
	Guest          domain.GuestInfo
	Category       domain.ServiceCategory
	InitialMessage string
	Priority       domain.TicketPriority
	Confidence     float64
}

// TicketFilter narrows board listings.
type TicketFilter struct {
	Status   string
	Category string
}

// CreationReport summarizes a multi-category creation. Created may be less
// than Requested on partial failure; each shortfall is logged individually.
type CreationReport struct {
	Tickets    []domain.Ticket
	Created    int
	Requested  int
	Categories []domain.ServiceCategory
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		rooms:      deps.RoomRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create persists one ticket in the raised state, seeds its thread with a
// system message, and emits a newTicket event.
func (s *TicketService) Create(ctx context.Context, input CreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Guest.Name) == "" {
		return nil, apperrors.NewValidationError("guest name required", nil)
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}

	room, err := s.rooms.GetByNumber(ctx, strings.TrimSpace(input.RoomNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("room", map[string]any{"roomNumber": input.RoomNumber})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	priority := input.Priority
	if !domain.IsValidPriority(priority) {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		ID:         uuid.NewString(),
		RoomID:     room.ID,
		RoomNumber: room.Number,
		Category:   input.Category,
		Guest:      input.Guest,
		Status:     domain.TicketStatusRaised,
		Subject:    domain.TicketSubject(input.Category, room.Number),
		Priority:   priority,
		Confidence: input.Confidence,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	seed := &domain.TicketMessage{
		ID:         uuid.NewString(),
		TicketID:   ticket.ID,
		Sender:     domain.SenderSystem,
		SenderName: "System",
		Content:    seedContent(input.InitialMessage, ticket.Subject),
	}
	if err := s.messages.Create(ctx, seed); err != nil {
		// The ticket exists; a missing seed message is logged, not fatal.
		s.logger.Error("failed to seed ticket message",
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	} else {
		ticket.Messages = append(ticket.Messages, *seed)
	}

	s.publish(ctx, events.NewTicketEvent(ticket))
	return ticket, nil
}

// CreateFromClassification creates one ticket per classified category. A
// single category's persistence error is logged and must not abort the
// others.
func (s *TicketService) CreateFromClassification(ctx context.Context, roomNumber string, guest domain.GuestInfo, result *domain.ClassificationResult) CreationReport {
	report := CreationReport{Requested: len(result.Categories)}
	for _, req := range result.Categories {
		priority := req.Urgency
		if !domain.IsValidPriority(priority) {
			priority = result.SuggestedPriority
		}
		ticket, err := s.Create(ctx, CreateInput{
			RoomNumber:     roomNumber,
			Guest:          guest,
			Category:       req.Category,
			InitialMessage: req.Message,
			Priority:       priority,
			Confidence:     result.Confidence,
		})
		if err != nil {
			s.logger.Error("ticket creation failed for category",
				zap.String("category", string(req.Category)),
				zap.String("room_number", roomNumber),
				zap.Error(err))
			continue
		}
		report.Tickets = append(report.Tickets, *ticket)
		report.Categories = append(report.Categories, ticket.Category)
		report.Created++
	}
	return report
}

// Get returns a ticket with its full message thread.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	ticket.Messages = msgs

	pool, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	ticket.MultiService = domain.IsMultiService(ticket, pool)
	return ticket, nil
}

// AppendMessage adds one entry to a ticket thread and emits ticketUpdated.
func (s *TicketService) AppendMessage(ctx context.Context, ticketID, content string, sender domain.MessageSender, senderName string) (*domain.Ticket, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("message content required", nil)
	}
	if !domain.IsValidSender(sender) {
		return nil, apperrors.NewValidationError("unknown sender role", map[string]any{"sender": sender})
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	msg := &domain.TicketMessage{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		Sender:     sender,
		SenderName: senderName,
		Content:    strings.TrimSpace(content),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	if err := s.tickets.Touch(ctx, ticketID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Warn("failed to bump ticket updated_at",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
	}

	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TicketUpdatedEvent(ticket))
	return ticket, nil
}

// SetStatus overwrites the ticket status. Any of the three legal values is
// accepted from any current state; staff may reopen a completed ticket.
// CompletedAt is set on completion and deliberately NOT cleared on reopen
// (preserved for compatibility; completedAt is stale after a reopen).
func (s *TicketService) SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperrors.NewInvalidStatus(string(status))
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	ticket.Status = status
	if status == domain.TicketStatusCompleted {
		now := time.Now()
		ticket.CompletedAt = &now
	}
	if err := s.tickets.UpdateStatus(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err == nil {
		ticket.Messages = msgs
	}
	s.publish(ctx, events.TicketUpdatedEvent(ticket))
	return ticket, nil
}

// Update applies a combined status change and/or manager response from the
// board's PUT path, emitting a single ticketUpdated event.
func (s *TicketService) Update(ctx context.Context, ticketID string, status *domain.TicketStatus, responseMessage, responderName string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	if status != nil {
		if !domain.IsValidStatus(*status) {
			return nil, apperrors.NewInvalidStatus(string(*status))
		}
		ticket.Status = *status
		if *status == domain.TicketStatusCompleted {
			now := time.Now()
			ticket.CompletedAt = &now
		}
		if err := s.tickets.UpdateStatus(ctx, ticket); err != nil {
			return nil, apperrors.NewUpstreamUnavailable("persistence", err)
		}
	}

	if strings.TrimSpace(responseMessage) != "" {
		name := responderName
		if name == "" {
			name = "Manager"
		}
		msg := &domain.TicketMessage{
			ID:         uuid.NewString(),
			TicketID:   ticketID,
			Sender:     domain.SenderManager,
			SenderName: name,
			Content:    strings.TrimSpace(responseMessage),
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			return nil, apperrors.NewUpstreamUnavailable("persistence", err)
		}
		if err := s.tickets.Touch(ctx, ticketID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("failed to bump ticket updated_at",
				zap.String("ticket_id", ticketID),
				zap.Error(err))
		}
	}

	updated, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TicketUpdatedEvent(updated))
	return updated, nil
}

// Delete permanently removes a ticket. Administrative and irreversible.
func (s *TicketService) Delete(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return apperrors.NewUpstreamUnavailable("persistence", err)
	}
	return nil
}

// List returns tickets most-recently-created first, optionally filtered by
// status and category. Callers bucket by status.
func (s *TicketService) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	if filter.Status != "" {
		status := domain.TicketStatus(filter.Status)
		if !domain.IsValidStatus(status) {
			return nil, apperrors.NewInvalidStatus(filter.Status)
		}
		repoFilter.Status = &status
	}
	if filter.Category != "" {
		category := domain.ServiceCategory(filter.Category)
		if !domain.IsValidCategory(category) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": filter.Category})
		}
		repoFilter.Category = &category
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}

	// Grouping looks across the whole pool; a filtered listing alone
	// would hide a ticket's siblings in other statuses or categories.
	pool := tickets
	if repoFilter.Status != nil || repoFilter.Category != nil {
		pool, err = s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
		if err != nil {
			return nil, apperrors.NewUpstreamUnavailable("persistence", err)
		}
	}
	for i := range tickets {
		tickets[i].MultiService = domain.IsMultiService(&tickets[i], pool)
	}
	return tickets, nil
}

// Group projects the correlation group for a ticket out of the current
// ticket pool, for the multi-service banner.
func (s *TicketService) Group(ctx context.Context, ticketID string) ([]domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	pool, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	group := domain.GroupFor(ticket, pool)
	multi := len(domain.GroupCategories(group)) > 1
	for i := range group {
		group[i].MultiService = multi
	}
	return group, nil
}

func (s *TicketService) publish(ctx context.Context, event events.TicketEvent) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func seedContent(initialMessage, subject string) string {
	if strings.TrimSpace(initialMessage) != "" {
		return strings.TrimSpace(initialMessage)
	}
	return subject
}
