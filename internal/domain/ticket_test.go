package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidStatus(t *testing.T) {
	require.True(t, IsValidStatus(TicketStatusRaised))
	require.True(t, IsValidStatus(TicketStatusInProgress))
	require.True(t, IsValidStatus(TicketStatusCompleted))
	require.False(t, IsValidStatus(TicketStatus("archived")))
	require.False(t, IsValidStatus(TicketStatus("")))
	require.False(t, IsValidStatus(TicketStatus("Raised")), "values are case sensitive")
}

func TestIsValidCategory(t *testing.T) {
	for _, category := range []ServiceCategory{
		CategoryReception, CategoryHousekeeping, CategoryPorter,
		CategoryConcierge, CategoryServiceFB, CategoryMaintenance,
	} {
		require.True(t, IsValidCategory(category), string(category))
	}
	require.False(t, IsValidCategory(ServiceCategory("spa")))
	require.False(t, IsValidCategory(ServiceCategory("")))
}

func TestIsValidPriority(t *testing.T) {
	require.True(t, IsValidPriority(TicketPriorityLow))
	require.True(t, IsValidPriority(TicketPriorityMedium))
	require.True(t, IsValidPriority(TicketPriorityHigh))
	require.False(t, IsValidPriority(TicketPriority("urgent")))
	require.False(t, IsValidPriority(TicketPriority("")))
}

func TestTicketSubject(t *testing.T) {
	require.Equal(t, "HOUSEKEEPING - Room 305", TicketSubject(CategoryHousekeeping, "305"))
	require.Equal(t, "SERVICE_FB - Room 12A", TicketSubject(CategoryServiceFB, "12A"))
}

func TestIsValidSender(t *testing.T) {
	require.True(t, IsValidSender(SenderGuest))
	require.True(t, IsValidSender(SenderManager))
	require.True(t, IsValidSender(SenderAIAssistant))
	require.True(t, IsValidSender(SenderSystem))
	require.False(t, IsValidSender(MessageSender("robot")))
}
