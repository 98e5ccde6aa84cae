package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCountCache keeps per-user unread counters out of the hot path.
// Writers invalidate, readers repopulate from Postgres on miss.
type UnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUnreadCountCache(client *redis.Client, ttl time.Duration) *UnreadCountCache {
	return &UnreadCountCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *UnreadCountCache) Get(ctx context.Context, userID string) (int, bool) {
	data, err := c.client.Get(ctx, "unread_count:"+userID).Result()
	if err != nil {
		return 0, false
	}

	count, err := strconv.Atoi(data)
	if err != nil {
		return 0, false
	}

	return count, true
}

func (c *UnreadCountCache) Set(ctx context.Context, userID string, count int) error {
	return c.client.Set(ctx, "unread_count:"+userID, strconv.Itoa(count), c.ttl).Err()
}

func (c *UnreadCountCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "unread_count:"+userID).Err()
}
