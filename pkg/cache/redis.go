package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lborres/tasuku/core"
)

const redisKeyPrefix = "tasuku:session:"

// RedisCache implements core.Cache on a shared Redis instance, so several
// server replicas see the same cached sessions. Entries carry the cache TTL,
// which bounds staleness the same way the in-memory TTL does.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ core.Cache = (*RedisCache)(nil)

// NewRedisCache wraps an existing client. A zero TTL selects 5 minutes.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(sessionID string) (*core.Session, error) {
	ctx := context.Background()

	data, err := c.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, core.ErrCacheNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	session := &core.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		_ = c.client.Del(ctx, redisKeyPrefix+sessionID).Err()
		return nil, core.ErrCacheNotFound
	}
	return session, nil
}

func (c *RedisCache) Set(sessionID string, session *core.Session) error {
	ctx := context.Background()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return c.client.Set(ctx, redisKeyPrefix+sessionID, data, c.ttl).Err()
}

func (c *RedisCache) Delete(sessionID string) error {
	return c.client.Del(context.Background(), redisKeyPrefix+sessionID).Err()
}

func (c *RedisCache) Clear() error {
	ctx := context.Background()

	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
