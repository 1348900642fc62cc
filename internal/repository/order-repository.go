package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tupyme/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrOrderNotFound is returned when an order id does not exist
var ErrOrderNotFound = fmt.Errorf("order not found")

// OrderRepository stores checkout orders in sqlite. Orders are the
// authority on payment state; only the payment processor moves an
// order out of processing.
type OrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sql.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateOrder inserts a new processing order for a cart snapshot
func (r *OrderRepository) CreateOrder(sessionID string, userID int64, total int, items []domain.CartItem) (*domain.Order, error) {
	orderID := uuid.New().String()

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, session_id, user_id, total, items_json, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()

	_, err = r.db.Exec(query, orderID, sessionID, userID, total, string(itemsJSON),
		domain.OrderStatusProcessing, now, now)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return r.GetOrderByID(orderID)
}

// GetOrderByID retrieves an order by its id
func (r *OrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	query := `
		SELECT id, session_id, user_id, total, items_json, status, created_at, updated_at, paid_at
		FROM orders
		WHERE id = ?`

	order := &domain.Order{}
	var itemsJSON string
	var paidAt sql.NullTime

	err := r.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.SessionID, &order.UserID, &order.Total, &itemsJSON,
		&order.Status, &order.CreatedAt, &order.UpdatedAt, &paidAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		r.logger.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("corrupt order items: %w", err)
	}

	if paidAt.Valid {
		order.PaidAt = &paidAt.Time
	}

	return order, nil
}

// GetOrdersBySession retrieves all orders created by one session
func (r *OrderRepository) GetOrdersBySession(sessionID string) ([]*domain.Order, error) {
	query := `
		SELECT id, session_id, user_id, total, items_json, status, created_at, updated_at, paid_at
		FROM orders
		WHERE session_id = ?
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		r.logger.Error("Failed to get session orders", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		var itemsJSON string
		var paidAt sql.NullTime

		err := rows.Scan(
			&order.ID, &order.SessionID, &order.UserID, &order.Total, &itemsJSON,
			&order.Status, &order.CreatedAt, &order.UpdatedAt, &paidAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan order", zap.Error(err))
			continue
		}

		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			r.logger.Error("Corrupt order items", zap.String("order_id", order.ID), zap.Error(err))
			continue
		}

		if paidAt.Valid {
			order.PaidAt = &paidAt.Time
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// SettleOrdersOlderThan marks processing orders created before the
// cutoff as paid and returns their ids.
func (r *OrderRepository) SettleOrdersOlderThan(cutoff time.Time) ([]string, error) {
	selectQuery := `
		SELECT id FROM orders
		WHERE status = ? AND created_at <= ?`

	rows, err := r.db.Query(selectQuery, domain.OrderStatusProcessing, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query settleable orders: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan order id", zap.Error(err))
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	updateQuery := `
		UPDATE orders
		SET status = ?, paid_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`

	now := time.Now()
	settled := make([]string, 0, len(ids))
	for _, id := range ids {
		result, err := r.db.Exec(updateQuery, domain.OrderStatusPaid, now, now, id, domain.OrderStatusProcessing)
		if err != nil {
			r.logger.Error("Failed to settle order", zap.String("order_id", id), zap.Error(err))
			continue
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil || rowsAffected == 0 {
			continue
		}
		settled = append(settled, id)
	}

	return settled, nil
}
