package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	cacheport "staychat/internal/infrastructure/cache/port"
)

// Unread keeps per-room, per-member unread counters in a fast-store hash.
// Counters only ever grow on delivery and drop to zero on that member's own
// read. Loss of the hash (eviction, restart) reads back as zero, a safe
// under-count.
type Unread struct {
	cache cacheport.Cache
}

func NewUnread(cache cacheport.Cache) *Unread {
	return &Unread{cache: cache}
}

// Increment bumps the counter for the recipient of a delivery. Never called
// for the sender.
func (u *Unread) Increment(ctx context.Context, roomID, memberID int64) error {
	if _, err := u.cache.HIncrBy(ctx, unreadKey(roomID), formatID(memberID), 1); err != nil {
		return fmt.Errorf("unread: increment: %w", err)
	}
	return nil
}

// Reset zeroes the counter for the member who just read the room.
func (u *Unread) Reset(ctx context.Context, roomID, memberID int64) error {
	if err := u.cache.HSet(ctx, unreadKey(roomID), formatID(memberID), "0"); err != nil {
		return fmt.Errorf("unread: reset: %w", err)
	}
	return nil
}

// Get returns the member's unread count for the room; a missing field is zero.
func (u *Unread) Get(ctx context.Context, roomID, memberID int64) (int64, error) {
	raw, err := u.cache.HGet(ctx, unreadKey(roomID), formatID(memberID))
	if errors.Is(err, cacheport.ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unread: get: %w", err)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
