package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreadTotalTTL matches the unread badge polling interval: a stale total
// survives at most one badge refresh.
const unreadTotalTTL = 10 * time.Second

// UnreadCache caches per-user unread totals in Redis. Every method is best
// effort; callers fall back to the database on a miss or an error.
type UnreadCache struct {
	client *redis.Client
}

func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

func unreadTotalKey(userID uint) string {
	return fmt.Sprintf("helpdesk:unread:total:%d", userID)
}

// GetTotal returns the cached total and whether one was present.
func (c *UnreadCache) GetTotal(ctx context.Context, userID uint) (int64, bool, error) {
	val, err := c.client.Get(ctx, unreadTotalKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get unread total: %w", err)
	}

	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse unread total: %w", err)
	}
	return total, true, nil
}

// SetTotal stores the freshly computed total with the badge-poll TTL.
func (c *UnreadCache) SetTotal(ctx context.Context, userID uint, total int64) error {
	val := strconv.FormatInt(total, 10)
	if err := c.client.Set(ctx, unreadTotalKey(userID), val, unreadTotalTTL).Err(); err != nil {
		return fmt.Errorf("failed to set unread total: %w", err)
	}
	return nil
}

// Invalidate drops the cached total after a write that changes it
// (a new message on one of the user's tickets, or the user marking read).
func (c *UnreadCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, unreadTotalKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread total: %w", err)
	}
	return nil
}
