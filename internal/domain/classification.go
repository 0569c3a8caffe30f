package domain

// CategoryRequest is one department-level request extracted from a guest
// message by the classifier.
type CategoryRequest struct {
	Category ServiceCategory
	Message  string
	Urgency  TicketPriority
}

// ClassificationResult is the normalized outcome of classifying one guest
// message. It is produced fresh per message and never persisted.
type ClassificationResult struct {
	ShouldCreateTicket  bool
	Categories          []CategoryRequest
	Confidence          float64
	Reasoning           string
	SuggestedPriority   TicketPriority
	EstimatedCompletion *string
}
