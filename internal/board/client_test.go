package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hotelops/guestdesk/internal/domain"
)

func TestFetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer staff-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/tickets":
			w.Write([]byte(`{"data":[
				{"id":"t1","roomNumber":"305","category":"housekeeping",
				 "guestInfo":{"name":"Grace Hopper"},"status":"raised",
				 "subject":"HOUSEKEEPING - Room 305","priority":"medium",
				 "createdAt":"2026-03-14T09:00:00Z","updatedAt":"2026-03-14T09:00:00Z"},
				{"id":"t2","roomNumber":"305","category":"service_fb",
				 "guestInfo":{"name":"Grace Hopper"},"status":"completed",
				 "subject":"SERVICE_FB - Room 305","priority":"low",
				 "createdAt":"2026-03-14T09:01:00Z","updatedAt":"2026-03-14T09:10:00Z",
				 "completedAt":"2026-03-14T09:10:00Z"}
			]}`))
		case "/rooms":
			w.Write([]byte(`{"data":[
				{"id":"room-305","number":"305","type":"suite","floor":3,"status":"occupied"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "staff-token")
	snapshot, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Tickets, 2)
	require.Equal(t, "t1", snapshot.Tickets[0].ID)
	require.Equal(t, domain.CategoryHousekeeping, snapshot.Tickets[0].Category)
	require.Equal(t, domain.TicketStatusRaised, snapshot.Tickets[0].Status)
	require.Nil(t, snapshot.Tickets[0].CompletedAt)
	require.NotNil(t, snapshot.Tickets[1].CompletedAt)

	require.Len(t, snapshot.Rooms, 1)
	require.Equal(t, "305", snapshot.Rooms[0].Number)
	require.Equal(t, 3, snapshot.Rooms[0].Floor)
	require.Equal(t, domain.RoomStatusOccupied, snapshot.Rooms[0].Status)
}

func TestFetchSnapshotServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.FetchSnapshot(context.Background())
	require.Error(t, err)
}
