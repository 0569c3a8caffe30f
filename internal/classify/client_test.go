package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/config"
	"github.com/hotelops/guestdesk/internal/domain"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *HTTPClassifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClassifier(config.ClassifierConfig{
		BaseURL:        server.URL,
		TimeoutSeconds: 2,
	}, zap.NewNop())
}

func TestClassifySuccess(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/classify", r.URL.Path)

		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "coffee and towels please", req.GuestMessage)
		require.Equal(t, "305", req.RoomNumber)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"should_create_ticket": true,
			"categories": []map[string]string{
				{"category": "service_fb", "message": "coffee", "urgency": "medium"},
				{"category": "housekeeping", "message": "towels", "urgency": "low"},
			},
			"confidence":                0.92,
			"reasoning":                 "two actionable requests",
			"suggested_priority":        "medium",
			"estimated_completion_time": "20 minutes",
		})
	})

	result := classifier.Classify(context.Background(), "coffee and towels please", "305")
	require.True(t, result.ShouldCreateTicket)
	require.Len(t, result.Categories, 2)
	require.Equal(t, domain.CategoryServiceFB, result.Categories[0].Category)
	require.Equal(t, domain.TicketPriorityLow, result.Categories[1].Urgency)
	require.InDelta(t, 0.92, result.Confidence, 1e-9)
	require.NotNil(t, result.EstimatedCompletion)
	require.Equal(t, "20 minutes", *result.EstimatedCompletion)
}

func TestClassifyDropsUnknownCategories(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"should_create_ticket": true,
			"categories": []map[string]string{
				{"category": "spa", "message": "massage at 4pm", "urgency": "low"},
				{"category": " Housekeeping ", "message": "towels", "urgency": "sky-high"},
			},
			"confidence":         1.7,
			"suggested_priority": "HIGH",
		})
	})

	result := classifier.Classify(context.Background(), "massage and towels", "101")
	require.True(t, result.ShouldCreateTicket)
	require.Len(t, result.Categories, 1, "unknown categories dropped")
	require.Equal(t, domain.CategoryHousekeeping, result.Categories[0].Category)
	require.Equal(t, domain.TicketPriorityMedium, result.Categories[0].Urgency, "unparseable urgency defaults")
	require.Equal(t, domain.TicketPriorityHigh, result.SuggestedPriority)
	require.Equal(t, 1.0, result.Confidence, "confidence clamped to [0,1]")
}

func TestClassifyAllCategoriesUnknownBecomesNonTicket(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"should_create_ticket": true,
			"categories": []map[string]string{
				{"category": "valet", "message": "bring my car"},
			},
			"confidence": 0.9,
		})
	})

	result := classifier.Classify(context.Background(), "bring my car around", "101")
	require.False(t, result.ShouldCreateTicket)
	require.Empty(t, result.Categories)
}

func TestClassifyServerErrorFallsBack(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	result := classifier.Classify(context.Background(), "my shower is broken", "101")
	require.False(t, result.ShouldCreateTicket)
	require.Equal(t, FallbackReasoning, result.Reasoning)
	require.Zero(t, result.Confidence)
	require.Equal(t, domain.TicketPriorityMedium, result.SuggestedPriority)
}

func TestClassifyUnreachableServiceFallsBack(t *testing.T) {
	classifier := NewHTTPClassifier(config.ClassifierConfig{
		BaseURL:        "http://127.0.0.1:1", // nothing listens here
		TimeoutSeconds: 1,
	}, zap.NewNop())

	result := classifier.Classify(context.Background(), "hello", "101")
	require.False(t, result.ShouldCreateTicket)
	require.Equal(t, FallbackReasoning, result.Reasoning)
}

func TestClassifyTimeoutFallsBack(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := classifier.Classify(ctx, "hello", "101")
	require.False(t, result.ShouldCreateTicket)
	require.Equal(t, FallbackReasoning, result.Reasoning)
}

func TestClassifyGarbageBodyFallsBackSafely(t *testing.T) {
	classifier := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"should_create_ticket": "not-a-bool"`))
	})

	result := classifier.Classify(context.Background(), "hello", "101")
	require.NotNil(t, result)
	require.False(t, result.ShouldCreateTicket)
}
