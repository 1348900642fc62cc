package backend

import (
	"context"
	"fmt"
	"net/http"

	"tupyme/internal/domain"
)

// ListTickets fetches all support tickets
func (c *Client) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket fetches one support ticket by id
func (c *Client) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%d", id), nil, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateTicket opens a new support ticket
func (c *Client) CreateTicket(ctx context.Context, req domain.CreateTicketRequest) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/tickets", req, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket updates an existing support ticket
func (c *Client) UpdateTicket(ctx context.Context, id int64, req domain.UpdateTicketRequest) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/v1/tickets/%d", id), req, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes a support ticket
func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tickets/%d", id), nil, nil)
}
