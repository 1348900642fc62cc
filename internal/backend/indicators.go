package backend

import (
	"context"
	"net/http"

	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// IndicatorsClient talks to the economic indicators API (mindicador)
type IndicatorsClient struct {
	client *Client
}

// NewIndicatorsClient creates a client for the indicators API
func NewIndicatorsClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *IndicatorsClient {
	return &IndicatorsClient{client: NewClient(baseURL, httpClient, logger)}
}

// GetDailyIndicators fetches today's UF, dollar and euro values
func (c *IndicatorsClient) GetDailyIndicators(ctx context.Context) (*domain.Indicators, error) {
	indicators := &domain.Indicators{}
	if err := c.client.doJSON(ctx, http.MethodGet, "/api", nil, indicators); err != nil {
		return nil, err
	}
	return indicators, nil
}
