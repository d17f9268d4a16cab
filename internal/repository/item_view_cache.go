package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisItemViewCache stores rendered item views as JSON in Redis.
type RedisItemViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and returns a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return redis.NewClient(opt), nil
}

// NewRedisItemViewCache creates a cache whose entries expire after ttl.
func NewRedisItemViewCache(client *redis.Client, ttl time.Duration) *RedisItemViewCache {
	return &RedisItemViewCache{client: client, ttl: ttl}
}

func itemViewKey(itemID int64, ownerView bool) string {
	if ownerView {
		return fmt.Sprintf("shareit:item:%d:view:owner", itemID)
	}
	return fmt.Sprintf("shareit:item:%d:view:public", itemID)
}

// Get decodes the cached view into dest. A miss returns false and no error.
func (c *RedisItemViewCache) Get(ctx context.Context, itemID int64, ownerView bool, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, itemViewKey(itemID, ownerView)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read item view %d: %w", itemID, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode item view %d: %w", itemID, err)
	}
	return true, nil
}

// Set stores view under the item's key. A positive maxTTL shortens the configured expiry.
func (c *RedisItemViewCache) Set(ctx context.Context, itemID int64, ownerView bool, view any, maxTTL time.Duration) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode item view %d: %w", itemID, err)
	}
	ttl := c.ttl
	if maxTTL > 0 && maxTTL < ttl {
		ttl = maxTTL
	}
	if err := c.client.Set(ctx, itemViewKey(itemID, ownerView), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write item view %d: %w", itemID, err)
	}
	return nil
}

// Invalidate removes both cached views of every given item.
func (c *RedisItemViewCache) Invalidate(ctx context.Context, itemIDs ...int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(itemIDs)*2)
	for _, id := range itemIDs {
		keys = append(keys, itemViewKey(id, true), itemViewKey(id, false))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate item views: %w", err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (c *RedisItemViewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
