package repository

import (
	"context"

	"tupyme/internal/backend"
	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// TicketRepository wraps the backend ticket CRUD endpoints. The backend
// owns all ticket state; nothing is cached here beyond the call result.
type TicketRepository struct {
	api    *backend.Client
	logger *zap.Logger
}

func NewTicketRepository(api *backend.Client, logger *zap.Logger) *TicketRepository {
	return &TicketRepository{
		api:    api,
		logger: logger,
	}
}

// ListByUser fetches all tickets and keeps the ones owned by the user
func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	tickets, err := r.api.ListTickets(ctx)
	if err != nil {
		r.logger.Warn("Failed to list tickets", zap.Error(err))
		return nil, err
	}

	owned := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.UserID == userID {
			owned = append(owned, ticket)
		}
	}

	return owned, nil
}

// Get fetches one ticket by id
func (r *TicketRepository) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := r.api.GetTicket(ctx, id)
	if err != nil {
		r.logger.Warn("Failed to fetch ticket", zap.Int64("ticket_id", id), zap.Error(err))
		return nil, err
	}
	return ticket, nil
}

// Create opens a new ticket
func (r *TicketRepository) Create(ctx context.Context, req domain.CreateTicketRequest) (*domain.Ticket, error) {
	ticket, err := r.api.CreateTicket(ctx, req)
	if err != nil {
		r.logger.Warn("Failed to create ticket", zap.Int64("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	r.logger.Info("Ticket created", zap.Int64("ticket_id", ticket.ID))
	return ticket, nil
}

// Update modifies an existing ticket
func (r *TicketRepository) Update(ctx context.Context, id int64, req domain.UpdateTicketRequest) (*domain.Ticket, error) {
	ticket, err := r.api.UpdateTicket(ctx, id, req)
	if err != nil {
		r.logger.Warn("Failed to update ticket", zap.Int64("ticket_id", id), zap.Error(err))
		return nil, err
	}
	return ticket, nil
}

// Delete removes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.DeleteTicket(ctx, id); err != nil {
		r.logger.Warn("Failed to delete ticket", zap.Int64("ticket_id", id), zap.Error(err))
		return err
	}

	r.logger.Info("Ticket deleted", zap.Int64("ticket_id", id))
	return nil
}
