package domain

// User represents an account in the backend user service
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegisterUserRequest represents a request to register a new account
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session represents the persisted login state of the device
type Session struct {
	LoggedIn  bool   `json:"logged_in"`
	UserID    int64  `json:"user_id"`
	UserEmail string `json:"user_email"`
}
