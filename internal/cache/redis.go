package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client          *redis.Client
	availabilityTTL time.Duration
}

func NewRedisCache(cfg utils.RedisConfig, availabilityTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		availabilityTTL: availabilityTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetAvailability returns the cached unfiltered calendar of one
// muthawwif, or nil on a miss. Cached entries may lag a concurrent
// booking by up to the TTL; the booking path never reads them.
func (c *RedisCache) GetAvailability(ctx context.Context, userID uuid.UUID) ([]*entity.Availability, error) {
	data, err := c.client.Get(ctx, availabilityKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var slots []*entity.Availability
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, userID uuid.UUID, slots []*entity.Availability) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(userID), payload, c.availabilityTTL).Err()
}

func (c *RedisCache) InvalidateAvailability(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, availabilityKey(userID)).Err()
}

// BlacklistToken marks a revoked access token for the remainder of its
// lifetime. Expired tokens fail signature checks anyway, so a TTL at or
// below zero needs no entry.
func (c *RedisCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err()
}

func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// StoreRefreshToken keeps the single valid refresh token per user.
// Issuing a new one overwrites the old, which rotates it out.
func (c *RedisCache) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return c.client.Set(ctx, refreshKey(userID), token, ttl).Err()
}

func (c *RedisCache) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := c.client.Get(ctx, refreshKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (c *RedisCache) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, refreshKey(userID)).Err()
}

func availabilityKey(userID uuid.UUID) string {
	return fmt.Sprintf("cache:availability:%s", userID.String())
}

func blacklistKey(token string) string {
	return fmt.Sprintf("auth:blacklist:%s", token)
}

func refreshKey(userID uuid.UUID) string {
	return fmt.Sprintf("auth:refresh:%s", userID.String())
}
