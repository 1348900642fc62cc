package cache

import (
	"context"
	"errors"

	"tupyme/internal/domain"
)

// ErrCacheMiss is returned when the requested entry is not cached
var ErrCacheMiss = errors.New("cache miss")

// IndicatorCache caches the daily economic indicators so the home
// screen does not hit the external API on every load.
type IndicatorCache interface {
	Get(ctx context.Context) (*domain.Indicators, error)
	Set(ctx context.Context, indicators *domain.Indicators) error
	Delete(ctx context.Context) error
}
