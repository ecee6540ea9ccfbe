package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	unreadKeyPrefix = "notifications:unread:"
	unreadTTL       = 7 * 24 * time.Hour
)

// UnreadCounter caches per-user unread notification counts in Redis
type UnreadCounter struct {
	rdb *redis.Client
}

func NewUnreadCounter(rdb *redis.Client) *UnreadCounter {
	return &UnreadCounter{rdb: rdb}
}

func unreadKey(userID uint) string {
	return unreadKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// Get reports ok=false on a cache miss
func (c *UnreadCounter) Get(ctx context.Context, userID uint) (int64, bool, error) {
	n, err := c.rdb.Get(ctx, unreadKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *UnreadCounter) Set(ctx context.Context, userID uint, count int64) error {
	return c.rdb.Set(ctx, unreadKey(userID), count, unreadTTL).Err()
}

func (c *UnreadCounter) Invalidate(ctx context.Context, userID uint) error {
	return c.rdb.Del(ctx, unreadKey(userID)).Err()
}
