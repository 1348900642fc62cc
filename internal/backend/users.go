package backend

import (
	"context"
	"net/http"
	"net/url"

	"tupyme/internal/domain"
)

// Register creates a new account and returns the stored user
func (c *Client) Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error) {
	user := &domain.User{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/users/register", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns the account data
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	user := &domain.User{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/users/login", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail fetches an account by email address
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(email), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}
