package backend

import (
	"context"
	"net/http"

	"tupyme/internal/domain"
)

// GetPlans fetches the purchasable plan catalog from the backend
func (c *Client) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/planes", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
