package board

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hotelops/guestdesk/internal/api/dto"
	"github.com/hotelops/guestdesk/internal/domain"
)

// Snapshot is one full pull of server state.
type Snapshot struct {
	Tickets []domain.Ticket
	Rooms   []domain.Room
}

// Client fetches board snapshots from the ticket service.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a snapshot client. The token is the staff bearer token.
func NewClient(baseURL, token string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	return &Client{httpClient: client}
}

type ticketListBody struct {
	Data []dto.TicketResponse `json:"data"`
}

type roomListBody struct {
	Data []dto.RoomResponse `json:"data"`
}

// FetchSnapshot pulls the full ticket and room lists.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	var tickets ticketListBody
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&tickets).
		Get("/tickets")
	if err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch tickets: status %d", resp.StatusCode())
	}

	var rooms roomListBody
	resp, err = c.httpClient.R().
		SetContext(ctx).
		SetResult(&rooms).
		Get("/rooms")
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch rooms: status %d", resp.StatusCode())
	}

	snapshot := &Snapshot{}
	for _, t := range tickets.Data {
		snapshot.Tickets = append(snapshot.Tickets, t.ToTicket())
	}
	for _, room := range rooms.Data {
		snapshot.Rooms = append(snapshot.Rooms, domain.Room{
			ID:        room.ID,
			Number:    room.Number,
			Type:      room.Type,
			Floor:     room.Floor,
			Status:    domain.RoomStatus(room.Status),
			CreatedAt: room.CreatedAt,
			UpdatedAt: room.UpdatedAt,
		})
	}
	return snapshot, nil
}
