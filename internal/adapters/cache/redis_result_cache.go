package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xctask-route-service/internal/domain"
)

// Redis-backed cache for computed optimization results. Suited to
// multi-instance deployments where results should expire rather than
// accumulate; TTL <= 0 stores entries without expiry.
type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

func (r *RedisResultCache) redisKey(key string) string { return "xctask:result:" + key }

// Fetch a cached result by key. A missing key is a miss, not an error.
func (r *RedisResultCache) Get(ctx context.Context, key string) (*domain.OptimizedRoute, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("result cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get result cache: key must not be empty")
	}

	payload, err := r.Client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get result cache: redis get: %w", err)
	}

	var result domain.OptimizedRoute
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("get result cache: decode result: %w", err)
	}

	return &result, true, nil
}

// Store a computed result under its key, replacing any previous value.
func (r *RedisResultCache) Put(ctx context.Context, key string, result *domain.OptimizedRoute) error {
	if r.Client == nil {
		return errors.New("result cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert result cache: key must not be empty")
	}
	if result == nil {
		return errors.New("insert result cache: result must not be nil")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert result cache: encode result: %w", err)
	}

	ttl := r.TTL
	if ttl < 0 {
		ttl = 0
	}
	if err := r.Client.Set(ctx, r.redisKey(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("insert result cache key=%q: redis set: %w", key, err)
	}

	return nil
}
