package domain

import "time"

// CartItem represents one priced line in the cart. The ID is unique per
// line, not per catalog entry, so the same service can be added twice.
type CartItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"` // always a concrete non-negative amount
}

// Order statuses
const (
	OrderStatusProcessing = "processing"
	OrderStatusPaid       = "paid"
	OrderStatusFailed     = "failed"
)

// Order represents a checkout accepted by the server. The order row is
// the authority on payment state; the cart is only cleared once the
// order reaches paid.
type Order struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	UserID    int64      `json:"user_id"`
	Total     int        `json:"total"`
	Items     []CartItem `json:"items"`
	Status    string     `json:"status"` // processing, paid, failed
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}
