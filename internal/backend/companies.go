package backend

import (
	"context"
	"fmt"
	"net/http"

	"tupyme/internal/domain"
)

// CreateCompany creates the company profile for a user
func (c *Client) CreateCompany(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	company := &domain.Company{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/empresas", req, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompanyByUser fetches the company profile attached to a user account
func (c *Client) GetCompanyByUser(ctx context.Context, userID int64) (*domain.Company, error) {
	company := &domain.Company{}
	path := fmt.Sprintf("/api/v1/empresas/usuario/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, company); err != nil {
		return nil, err
	}
	return company, nil
}
