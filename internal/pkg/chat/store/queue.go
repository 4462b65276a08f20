package store

import (
	"context"
	"encoding/json"
	"fmt"

	cacheport "staychat/internal/infrastructure/cache/port"
	chat "staychat/internal/pkg/chat/domain"
)

// Queue is the write-behind staging area: an ordered fast-store list that
// accumulates accepted messages until a drain pass commits them to the
// durable store. Producers only ever append; a drain pass claims the whole
// list at once by atomically renaming it to a working key, so new enqueues
// land in a fresh live queue while the claimed batch is processed.
type Queue struct {
	cache cacheport.Cache
}

func NewQueue(cache cacheport.Cache) *Queue {
	return &Queue{cache: cache}
}

// Enqueue appends the message to the live queue.
func (q *Queue) Enqueue(ctx context.Context, msg *chat.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("queue: marshal: %w", err)
	}
	if err := q.cache.RPush(ctx, queueKey, string(payload)); err != nil {
		return fmt.Errorf("queue: enqueue: %w", err)
	}
	return nil
}

// ClaimBatch atomically moves the live queue to the working key and returns
// its decoded contents. An empty live queue returns (nil, false, nil) and
// leaves nothing behind; a concurrent drain finding nothing is a no-op.
func (q *Queue) ClaimBatch(ctx context.Context) ([]chat.Message, bool, error) {
	present, err := q.cache.Exists(ctx, queueKey)
	if err != nil {
		return nil, false, fmt.Errorf("queue: exists: %w", err)
	}
	if !present {
		return nil, false, nil
	}
	if err := q.cache.Rename(ctx, queueKey, queueWorkingKey); err != nil {
		return nil, false, fmt.Errorf("queue: claim: %w", err)
	}
	msgs, err := q.readWorking(ctx)
	if err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}

// PendingBatch returns the contents of a working key left over from a
// previous pass that crashed or failed between rename and delete. It is the
// resume point: the caller drains it fully before claiming a new batch.
func (q *Queue) PendingBatch(ctx context.Context) ([]chat.Message, bool, error) {
	present, err := q.cache.Exists(ctx, queueWorkingKey)
	if err != nil {
		return nil, false, fmt.Errorf("queue: exists: %w", err)
	}
	if !present {
		return nil, false, nil
	}
	msgs, err := q.readWorking(ctx)
	if err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}

// ReleaseBatch removes the working key after its contents were durably
// committed. Until this runs, the batch remains claim-able for retry.
func (q *Queue) ReleaseBatch(ctx context.Context) error {
	if _, err := q.cache.Del(ctx, queueWorkingKey); err != nil {
		return fmt.Errorf("queue: release: %w", err)
	}
	return nil
}

func (q *Queue) readWorking(ctx context.Context) ([]chat.Message, error) {
	raw, err := q.cache.LRange(ctx, queueWorkingKey, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("queue: range: %w", err)
	}
	msgs := make([]chat.Message, 0, len(raw))
	for _, entry := range raw {
		var m chat.Message
		if err := json.Unmarshal([]byte(entry), &m); err != nil {
			return nil, fmt.Errorf("queue: decode entry: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
