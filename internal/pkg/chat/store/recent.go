package store

import (
	"context"
	"encoding/json"
	"fmt"

	cacheport "staychat/internal/infrastructure/cache/port"
	chat "staychat/internal/pkg/chat/domain"
)

// recentCacheCap bounds the per-room recency buffer; entries past the cap
// are evicted oldest-first on every push.
const recentCacheCap = 100

// RecentCache is the bounded per-room recency buffer used to serve the most
// recent page of history without a durable-store round trip. Most-recent
// entries sit at the head of the list.
type RecentCache struct {
	cache cacheport.Cache
}

func NewRecentCache(cache cacheport.Cache) *RecentCache {
	return &RecentCache{cache: cache}
}

// Push prepends the message to the room's buffer and trims it to the cap.
func (r *RecentCache) Push(ctx context.Context, msg *chat.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("recent cache: marshal: %w", err)
	}
	key := recentCacheKey(msg.RoomID)
	if err := r.cache.LPush(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("recent cache: push: %w", err)
	}
	if err := r.cache.LTrim(ctx, key, 0, recentCacheCap-1); err != nil {
		return fmt.Errorf("recent cache: trim: %w", err)
	}
	return nil
}

// List returns the cached messages for the room, most-recent-first.
// Entries that fail to decode are skipped.
func (r *RecentCache) List(ctx context.Context, roomID int64) ([]chat.Message, error) {
	raw, err := r.cache.LRange(ctx, recentCacheKey(roomID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("recent cache: range: %w", err)
	}
	msgs := make([]chat.Message, 0, len(raw))
	for _, entry := range raw {
		var m chat.Message
		if err := json.Unmarshal([]byte(entry), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
