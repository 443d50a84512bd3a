// Copyright (c) 2026 Agora. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ltcastel/agora/internal/platform/constants"
)

// RedisDenylistRepository implements [DenylistRepository] on Redis.
//
// Each revoked token id becomes a key with a TTL equal to the token's
// remaining life, so Redis expiry garbage-collects the denylist for free.
type RedisDenylistRepository struct {
	client *redis.Client
}

// NewDenylistRepository creates the Redis implementation of [DenylistRepository].
func NewDenylistRepository(client *redis.Client) *RedisDenylistRepository {
	return &RedisDenylistRepository{client: client}
}

func denylistKey(tokenID string) string {
	return constants.RedisPrefixDenylist + tokenID
}

// Add marks a token id as revoked until its natural expiry.
func (repository *RedisDenylistRepository) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := repository.client.Set(ctx, denylistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("denylist_add_failed: %w", err)
	}

	return nil
}

// Contains reports whether a token id has been revoked.
func (repository *RedisDenylistRepository) Contains(ctx context.Context, tokenID string) (bool, error) {
	count, err := repository.client.Exists(ctx, denylistKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist_lookup_failed: %w", err)
	}

	return count > 0, nil
}
