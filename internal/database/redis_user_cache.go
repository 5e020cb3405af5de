package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"social-server/internal/interfaces"
	"social-server/internal/models"
)

// Compile-time check to ensure redisUserCache implements UserCache
var _ interfaces.UserCache = (*redisUserCache)(nil)

// Cache key format shared with pre-existing snapshots: "user:{username}".
const userCacheKeyPrefix = "user:"

type redisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed account snapshot cache.
// A ttl of zero keeps entries until they are explicitly replaced or deleted.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.UserCache {
	return &redisUserCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisUserCache"),
	}
}

// GetUser retrieves and decodes the snapshot for a username.
// Returns models.ErrCacheMiss when no entry exists.
func (c *redisUserCache) GetUser(ctx context.Context, username string) (*models.User, error) {
	key := userCacheKeyPrefix + username
	c.logger.Debug("Getting user snapshot from Redis", zap.String("key", key))

	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			c.logger.Debug("User snapshot not found in Redis", zap.String("username", username))
			return nil, models.ErrCacheMiss
		}
		c.logger.Error("Failed to get user snapshot from redis", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get user snapshot from redis: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal([]byte(payload), user); err != nil {
		// Corrupted snapshot: drop it so the next read repopulates from storage.
		c.logger.Error("Failed to decode user snapshot from redis, dropping entry",
			zap.Error(err), zap.String("key", key))
		c.client.Del(ctx, key)
		return nil, models.ErrCacheMiss
	}
	return user, nil
}

// SetUser stores the serialized snapshot for a user.
func (c *redisUserCache) SetUser(ctx context.Context, user *models.User) error {
	key := userCacheKeyPrefix + user.Username

	payload, err := json.Marshal(user)
	if err != nil {
		c.logger.Error("Failed to encode user snapshot", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}

	c.logger.Debug("Setting user snapshot in Redis",
		zap.String("key", key), zap.Duration("ttl", c.ttl))

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to set user snapshot in redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set user snapshot in redis: %w", err)
	}
	return nil
}

// DeleteUser removes the snapshot for a username.
func (c *redisUserCache) DeleteUser(ctx context.Context, username string) error {
	key := userCacheKeyPrefix + username
	c.logger.Debug("Deleting user snapshot from Redis", zap.String("key", key))

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to delete user snapshot from redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to delete user snapshot from redis: %w", err)
	}
	return nil
}
