package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tupyme/internal/domain"

	"github.com/redis/go-redis/v9"
)

const indicatorKey = "indicators:daily"

// NewRedisCache creates an indicator cache backed by redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisCache) Get(ctx context.Context) (*domain.Indicators, error) {
	data, err := r.client.Get(ctx, indicatorKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var indicators domain.Indicators
	if err := json.Unmarshal(data, &indicators); err != nil {
		return nil, fmt.Errorf("unmarshal indicators failed: %w", err)
	}

	return &indicators, nil
}

func (r *RedisCache) Set(ctx context.Context, indicators *domain.Indicators) error {
	data, err := json.Marshal(indicators)
	if err != nil {
		return fmt.Errorf("marshal indicators failed: %w", err)
	}

	if err := r.client.Set(ctx, indicatorKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, indicatorKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
