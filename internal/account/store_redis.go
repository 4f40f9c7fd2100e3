// Copyright (c) 2026 Rolodex. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] on Redis.
//
// Entries expire automatically via Redis TTLs, so no cleanup job is needed.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewRedisResetTokenRepository creates a Redis-backed reset token store.
func NewRedisResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores a token digest mapped to the accountID with the given TTL.
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash, accountID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Set(context, key, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

// Get resolves a token digest to its accountID.
func (repository *RedisResetTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	accountID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return accountID, nil
}

// Delete removes a token digest after successful use.
func (repository *RedisResetTokenRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
