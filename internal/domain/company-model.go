package domain

// Company represents the business profile attached to a user account
type Company struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"usuarioId"`
	Name    string `json:"nombre"`
	RUT     string `json:"rut"`
	Line    string `json:"giro"`
	Address string `json:"direccion"`
}

// CreateCompanyRequest represents a request to create a company profile
type CreateCompanyRequest struct {
	UserID  int64  `json:"usuarioId" validate:"required"`
	Name    string `json:"nombre" validate:"required"`
	RUT     string `json:"rut" validate:"required"`
	Line    string `json:"giro"`
	Address string `json:"direccion"`
}
