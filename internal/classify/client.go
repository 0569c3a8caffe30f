// Package classify calls the external message classification service and
// normalizes its responses. The gateway fails safe-closed: any transport
// error, non-success status, or malformed payload yields the fixed fallback
// result rather than an error, so a classifier outage never pages staff or
// breaks the guest conversation.
package classify

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/config"
	"github.com/hotelops/guestdesk/internal/domain"
)

// FallbackReasoning is surfaced on the degraded-mode result.
const FallbackReasoning = "Classification service unavailable"

// Classifier decides whether a guest message warrants tickets.
// Implementations never return an error; degraded mode is expressed
// through the fallback result and operator-facing logs.
type Classifier interface {
	Classify(ctx context.Context, message, roomNumber string) *domain.ClassificationResult
}

type classifyRequest struct {
	GuestMessage string `json:"guest_message"`
	RoomNumber   string `json:"room_number"`
}

type classifyResponse struct {
	ShouldCreateTicket bool    `json:"should_create_ticket"`
	Categories         []struct {
		Category string `json:"category"`
		Message  string `json:"message"`
		Urgency  string `json:"urgency"`
	} `json:"categories"`
	Confidence              float64 `json:"confidence"`
	Reasoning               string  `json:"reasoning"`
	SuggestedPriority       string  `json:"suggested_priority"`
	EstimatedCompletionTime *string `json:"estimated_completion_time"`
}

// HTTPClassifier talks to the classification service over HTTP.
type HTTPClassifier struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHTTPClassifier builds the gateway from config. No retries: a guest
// can simply resend, and retrying inside the gateway would stall the
// conversation turn.
func NewHTTPClassifier(cfg config.ClassifierConfig, logger *zap.Logger) *HTTPClassifier {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &HTTPClassifier{httpClient: client, logger: logger}
}

// Classify posts the guest message and normalizes the response.
func (c *HTTPClassifier) Classify(ctx context.Context, message, roomNumber string) *domain.ClassificationResult {
	var response classifyResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(classifyRequest{GuestMessage: message, RoomNumber: roomNumber}).
		SetResult(&response).
		Post("/classify")

	if err != nil {
		c.logger.Warn("classification call failed; falling back",
			zap.Error(err),
			zap.String("room_number", roomNumber))
		return FallbackResult()
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Warn("classification returned non-success status; falling back",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("room_number", roomNumber))
		return FallbackResult()
	}

	return c.normalize(&response)
}

// FallbackResult is the fixed degraded-mode classification.
func FallbackResult() *domain.ClassificationResult {
	return &domain.ClassificationResult{
		ShouldCreateTicket: false,
		Categories:         nil,
		Confidence:         0.0,
		Reasoning:          FallbackReasoning,
		SuggestedPriority:  domain.TicketPriorityMedium,
	}
}

func (c *HTTPClassifier) normalize(resp *classifyResponse) *domain.ClassificationResult {
	result := &domain.ClassificationResult{
		ShouldCreateTicket:  resp.ShouldCreateTicket,
		Confidence:          clampConfidence(resp.Confidence),
		Reasoning:           resp.Reasoning,
		SuggestedPriority:   normalizePriority(resp.SuggestedPriority),
		EstimatedCompletion: resp.EstimatedCompletionTime,
	}

	for _, cat := range resp.Categories {
		category := domain.ServiceCategory(strings.ToLower(strings.TrimSpace(cat.Category)))
		if !domain.IsValidCategory(category) {
			c.logger.Warn("dropping unknown classification category",
				zap.String("category", cat.Category))
			continue
		}
		result.Categories = append(result.Categories, domain.CategoryRequest{
			Category: category,
			Message:  cat.Message,
			Urgency:  normalizePriority(cat.Urgency),
		})
	}

	// A ticket-worthy verdict with no usable categories is unactionable.
	if result.ShouldCreateTicket && len(result.Categories) == 0 {
		c.logger.Warn("classification had no usable categories; treating as non-ticket")
		result.ShouldCreateTicket = false
	}
	return result
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func normalizePriority(p string) domain.TicketPriority {
	priority := domain.TicketPriority(strings.ToLower(strings.TrimSpace(p)))
	if !domain.IsValidPriority(priority) {
		return domain.TicketPriorityMedium
	}
	return priority
}
