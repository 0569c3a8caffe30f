package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/classify"
	"github.com/hotelops/guestdesk/internal/domain"
)

// historyWindow bounds how many prior turns are folded into the
// classification context.
const historyWindow = 6

// ConversationTurn is one prior exchange in a guest conversation. The
// session is stateless across requests; the caller supplies the history
// each turn and the service rebuilds context from it.
type ConversationTurn struct {
	Role    string
	Content string
}

// GuestTurnInput is a single guest conversational turn.
type GuestTurnInput struct {
	Message    string
	RoomNumber string
	Guest      domain.GuestInfo
	History    []ConversationTurn
}

// GuestTurnResult is the assistant's reply plus what happened.
type GuestTurnResult struct {
	Reply          string
	Classification *domain.ClassificationResult
	Report         CreationReport
	IsGreeting     bool
}

// ChatService runs guest conversation turns: classification, ticket
// creation, and assistant reply composition.
type ChatService struct {
	classifier classify.Classifier
	tickets    *TicketService
	logger     *zap.Logger
}

// NewChatService constructs the service.
func NewChatService(classifier classify.Classifier, tickets *TicketService, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{classifier: classifier, tickets: tickets, logger: logger}
}

// HandleGuestTurn classifies the message in conversation context, creates
// tickets when warranted, and composes the assistant reply. Classification
// always completes before any ticket is created from its result.
func (s *ChatService) HandleGuestTurn(ctx context.Context, input GuestTurnInput) *GuestTurnResult {
	contextMessage := buildContext(input.History, input.Message)
	result := s.classifier.Classify(ctx, contextMessage, input.RoomNumber)

	if !result.ShouldCreateTicket {
		return &GuestTurnResult{
			Reply:          declineReply(result),
			Classification: result,
			IsGreeting:     true,
		}
	}

	report := s.tickets.CreateFromClassification(ctx, input.RoomNumber, input.Guest, result)
	if report.Created < report.Requested {
		s.logger.Warn("partial ticket creation during guest turn",
			zap.Int("requested", report.Requested),
			zap.Int("created", report.Created),
			zap.String("room_number", input.RoomNumber))
	}
	return &GuestTurnResult{
		Reply:          acknowledgeReply(report, result),
		Classification: result,
		Report:         report,
	}
}

// ClassifyAndCreate backs the guest-flow ticket endpoint: classify one
// message and create tickets for every classified category. A declined
// classification is signalled through IsGreeting, distinct from an error.
func (s *ChatService) ClassifyAndCreate(ctx context.Context, roomNumber string, guest domain.GuestInfo, message string) *GuestTurnResult {
	result := s.classifier.Classify(ctx, message, roomNumber)
	if !result.ShouldCreateTicket {
		return &GuestTurnResult{
			Reply:          declineReply(result),
			Classification: result,
			IsGreeting:     true,
		}
	}
	report := s.tickets.CreateFromClassification(ctx, roomNumber, guest, result)
	return &GuestTurnResult{
		Reply:          acknowledgeReply(report, result),
		Classification: result,
		Report:         report,
	}
}

func buildContext(history []ConversationTurn, message string) string {
	if len(history) == 0 {
		return message
	}
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	var b strings.Builder
	for _, turn := range history[start:] {
		role := strings.TrimSpace(turn.Role)
		if role == "" {
			role = "guest"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, strings.TrimSpace(turn.Content))
	}
	fmt.Fprintf(&b, "guest: %s", message)
	return b.String()
}

func declineReply(result *domain.ClassificationResult) string {
	if result.Reasoning == classify.FallbackReasoning {
		// Degraded mode: generic reply, never raw error detail.
		return "Thanks for your message. If you need anything from our team, please let us know what we can do for you."
	}
	return "Hello! How can we make your stay more comfortable?"
}

func acknowledgeReply(report CreationReport, result *domain.ClassificationResult) string {
	if report.Created == 0 {
		return "We were unable to log your request just now. Please try again in a moment or contact reception directly."
	}
	lines := make([]string, 0, len(report.Categories))
	for _, category := range report.Categories {
		lines = append(lines, fmt.Sprintf("I've notified our %s team.", categoryDisplay(category)))
	}
	reply := strings.Join(lines, " ")
	if result.EstimatedCompletion != nil && *result.EstimatedCompletion != "" {
		reply += fmt.Sprintf(" Estimated completion: %s.", *result.EstimatedCompletion)
	}
	return reply
}

func categoryDisplay(category domain.ServiceCategory) string {
	switch category {
	case domain.CategoryReception:
		return "reception"
	case domain.CategoryHousekeeping:
		return "housekeeping"
	case domain.CategoryPorter:
		return "porter"
	case domain.CategoryConcierge:
		return "concierge"
	case domain.CategoryServiceFB:
		return "food & beverage"
	case domain.CategoryMaintenance:
		return "maintenance"
	default:
		return string(category)
	}
}
