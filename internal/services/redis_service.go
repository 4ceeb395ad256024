package services

import (
	"context"
	"fmt"
	"time"

	"checkout-api/internal/config"
	"checkout-api/internal/database"

	"github.com/redis/go-redis/v9"
)

// RedisService provides Redis-backed checkout rate limiting. Redis is
// optional; when no client is configured every check passes.
type RedisService struct {
	client *redis.Client
}

// NewRedisService creates a Redis service over the shared client
func NewRedisService() *RedisService {
	return &RedisService{client: database.GetRedis()}
}

// Enabled reports whether a Redis client is configured
func (r *RedisService) Enabled() bool {
	return r.client != nil
}

// CheckCheckoutRateLimit checks whether the user recently initiated a checkout
func (r *RedisService) CheckCheckoutRateLimit(userID string) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	ctx := context.Background()
	key := fmt.Sprintf("checkout_rate_limit:%s", userID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

// SetCheckoutRateLimit marks the user as having initiated a checkout
func (r *RedisService) SetCheckoutRateLimit(userID string) error {
	if !r.Enabled() {
		return nil
	}
	ctx := context.Background()
	key := fmt.Sprintf("checkout_rate_limit:%s", userID)
	expire := time.Duration(config.AppConfig.RateLimitMinutes) * time.Minute
	return r.client.Set(ctx, key, "1", expire).Err()
}
