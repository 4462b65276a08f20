package port

import (
	"context"
	"time"
)

// Cache defines the contract for the shared fast key-value store. The chat
// core coordinates across server processes exclusively through this port
// (membership sets, unread counter hashes, bounded recency lists, the
// write-behind queue and its atomic rename, request keys with TTL, and the
// fan-out channel), never through in-process state.
//
// Implementations must be concurrency-safe. All methods are context-aware
// to allow caller-driven timeouts/cancellation.
type Cache interface {
	// Get fetches the value for key. Misses are reported as ("", ErrMiss)
	// so callers can differentiate them from transport errors.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number of keys removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Expire sets the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Keys returns the keys matching pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Set operations.
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, member string) error
	SIsMember(ctx context.Context, key string, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)

	// Hash operations with per-field increment.
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, error)

	// List operations with trim, plus the atomic rename used by the
	// write-behind drain's two-key protocol.
	LPush(ctx context.Context, key string, values ...string) error
	RPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Rename(ctx context.Context, src, dst string) error

	// Publish/Subscribe on a shared channel.
	Publish(ctx context.Context, channel, payload string) error
	Subscribe(ctx context.Context, channel string) (Subscription, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Subscription is a live subscription to a channel. Messages stops
// yielding after Close.
type Subscription interface {
	Messages() <-chan string
	Close() error
}

// ErrMiss signals a cache miss in a typed way.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
