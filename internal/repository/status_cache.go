package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// StatusCache caches derived status snapshots for dashboard reads. A miss or
// cache error degrades to a storage read; the cache is never authoritative.
type StatusCache interface {
	Get(ctx context.Context, employeeID int64) (*domain.StatusSnapshot, bool)
	Set(ctx context.Context, employeeID int64, snapshot domain.StatusSnapshot)
	Invalidate(ctx context.Context, employeeID int64)
}

type redisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache wraps a Redis client as a StatusCache.
func NewRedisStatusCache(client *redis.Client, ttl time.Duration) StatusCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisStatusCache{client: client, ttl: ttl}
}

func statusKey(employeeID int64) string {
	return fmt.Sprintf("attendance:status:%d", employeeID)
}

func (c *redisStatusCache) Get(ctx context.Context, employeeID int64) (*domain.StatusSnapshot, bool) {
	payload, err := c.client.Get(ctx, statusKey(employeeID)).Bytes()
	if err != nil {
		return nil, false
	}
	var snapshot domain.StatusSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

func (c *redisStatusCache) Set(ctx context.Context, employeeID int64, snapshot domain.StatusSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, statusKey(employeeID), payload, c.ttl).Err()
}

func (c *redisStatusCache) Invalidate(ctx context.Context, employeeID int64) {
	_ = c.client.Del(ctx, statusKey(employeeID)).Err()
}
