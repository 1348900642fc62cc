package domain

// Ticket statuses as the backend reports them
const (
	TicketStatusOpen   = "abierto"
	TicketStatusClosed = "cerrado"
)

// Ticket represents a support ticket owned by the backend. The client
// only caches the last fetched list.
type Ticket struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"usuarioId"`
	CompanyID   *int64 `json:"empresaId,omitempty"`
	Subject     string `json:"asunto"`
	Description string `json:"descripcion"`
	Status      string `json:"estado"`
	CreatedAt   string `json:"fechaCreacion"`
}

// CreateTicketRequest represents a request to open a support ticket
type CreateTicketRequest struct {
	UserID      int64  `json:"usuarioId" validate:"required"`
	CompanyID   *int64 `json:"empresaId,omitempty"`
	Subject     string `json:"asunto" validate:"required"`
	Description string `json:"descripcion" validate:"required"`
}

// UpdateTicketRequest represents a ticket update (subject, body or status)
type UpdateTicketRequest struct {
	Subject     string `json:"asunto,omitempty"`
	Description string `json:"descripcion,omitempty"`
	Status      string `json:"estado,omitempty"`
}
