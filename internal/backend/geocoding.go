package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// GeocoderClient talks to the address search service (Nominatim-shaped)
type GeocoderClient struct {
	client *Client
}

// NewGeocoderClient creates a client for the geocoding API
func NewGeocoderClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *GeocoderClient {
	return &GeocoderClient{client: NewClient(baseURL, httpClient, logger)}
}

// SearchAddress returns address suggestions for an autocomplete query,
// restricted to Chile.
func (c *GeocoderClient) SearchAddress(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("countrycodes", "cl")
	params.Set("limit", strconv.Itoa(limit))

	var results []domain.GeocodeResult
	if err := c.client.doJSON(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
