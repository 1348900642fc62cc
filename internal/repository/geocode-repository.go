package repository

import (
	"context"

	"tupyme/internal/backend"
	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// GeocodeRepository wraps the address autocomplete service
type GeocodeRepository struct {
	api    *backend.GeocoderClient
	logger *zap.Logger
}

func NewGeocodeRepository(api *backend.GeocoderClient, logger *zap.Logger) *GeocodeRepository {
	return &GeocodeRepository{
		api:    api,
		logger: logger,
	}
}

// SearchAddress returns address suggestions for the query
func (r *GeocodeRepository) SearchAddress(ctx context.Context, query string) ([]domain.GeocodeResult, error) {
	results, err := r.api.SearchAddress(ctx, query, 5)
	if err != nil {
		r.logger.Warn("Address search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return results, nil
}
