package repository

import (
	"context"
	"errors"
	"time"

	"tupyme/internal/backend"
	"tupyme/internal/cache"
	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// IndicatorRepository serves the daily economic indicators through a
// best-effort redis cache. Cache failures are logged and ignored; the
// external API stays the source of truth.
type IndicatorRepository struct {
	api    *backend.IndicatorsClient
	cache  cache.IndicatorCache
	logger *zap.Logger
}

func NewIndicatorRepository(api *backend.IndicatorsClient, indicatorCache cache.IndicatorCache, logger *zap.Logger) *IndicatorRepository {
	return &IndicatorRepository{
		api:    api,
		cache:  indicatorCache,
		logger: logger,
	}
}

// GetDaily returns today's UF/USD/EUR values, cached when possible
func (r *IndicatorRepository) GetDaily(ctx context.Context) (*domain.Indicators, error) {
	indicators, err := r.cache.Get(ctx)
	if err == nil {
		return indicators, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Indicator cache get failed", zap.Error(err))
	}

	indicators, err = r.api.GetDailyIndicators(ctx)
	if err != nil {
		r.logger.Warn("Failed to fetch indicators", zap.Error(err))
		return nil, err
	}

	go func() {
		setCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.cache.Set(setCtx, indicators); err != nil {
			r.logger.Warn("Indicator cache set failed", zap.Error(err))
		}
	}()

	return indicators, nil
}
