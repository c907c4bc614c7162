package notifications

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatherly/notify/pkg/notification"
)

// countCacheTTL bounds staleness if an invalidation is lost.
const countCacheTTL = 5 * time.Minute

// CountCommander is the subset of redis.Client the cache uses.
type CountCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CountCache decorates a Storage with a Redis cache for the unread
// count, the hottest query: the badge rereads it on every poll. Writes
// invalidate the cached value; cache failures fall through to the
// underlying storage.
type CountCache struct {
	Storage
	rdb CountCommander
}

// NewCountCache wraps storage with a Redis-backed unread-count cache.
func NewCountCache(storage Storage, rdb CountCommander) *CountCache {
	return &CountCache{Storage: storage, rdb: rdb}
}

func countKey(userID string) string {
	return "notify:unread:" + userID
}

func (c *CountCache) CountUnread(ctx context.Context, userID string) (int, error) {
	if val, err := c.rdb.Get(ctx, countKey(userID)).Result(); err == nil {
		if count, convErr := strconv.Atoi(val); convErr == nil {
			return count, nil
		}
	}

	count, err := c.Storage.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = c.rdb.Set(ctx, countKey(userID), count, countCacheTTL).Err()
	return count, nil
}

func (c *CountCache) Create(ctx context.Context, n notification.Notification) error {
	if err := c.Storage.Create(ctx, n); err != nil {
		return err
	}
	c.invalidate(ctx, n.TargetUserID)
	return nil
}

func (c *CountCache) MarkRead(ctx context.Context, userID string, ids ...string) error {
	if err := c.Storage.MarkRead(ctx, userID, ids...); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CountCache) MarkAllRead(ctx context.Context, userID string) error {
	if err := c.Storage.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *CountCache) Delete(ctx context.Context, userID string, ids ...string) (int, error) {
	count, err := c.Storage.Delete(ctx, userID, ids...)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, userID)
	return count, nil
}

func (c *CountCache) DeleteAllRead(ctx context.Context, userID string) (int, error) {
	count, err := c.Storage.DeleteAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, userID)
	return count, nil
}

func (c *CountCache) invalidate(ctx context.Context, userID string) {
	_ = c.rdb.Del(ctx, countKey(userID)).Err()
}
