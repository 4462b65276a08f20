package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cacheport "staychat/internal/infrastructure/cache/port"
	chat "staychat/internal/pkg/chat/domain"
)

// Fanout broadcasts accepted messages to every server process subscribed to
// the shared channel, so the instance that accepted a message need not be
// the one holding the recipient's socket.
type Fanout struct {
	cache cacheport.Cache
}

func NewFanout(cache cacheport.Cache) *Fanout {
	return &Fanout{cache: cache}
}

// Publish sends the message to all subscribed processes. Callers publish
// only after their local side effects have committed, never speculatively.
func (f *Fanout) Publish(ctx context.Context, msg *chat.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("fanout: marshal: %w", err)
	}
	if err := f.cache.Publish(ctx, fanoutChannel, string(payload)); err != nil {
		return fmt.Errorf("fanout: publish: %w", err)
	}
	return nil
}

// Run subscribes to the shared channel and invokes handler for every
// decoded message until the context is canceled. Undecodable payloads are
// logged and skipped.
func (f *Fanout) Run(ctx context.Context, handler func(chat.Message)) error {
	sub, err := f.cache.Subscribe(ctx, fanoutChannel)
	if err != nil {
		return fmt.Errorf("fanout: subscribe: %w", err)
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-sub.Messages():
			if !ok {
				return nil
			}
			var msg chat.Message
			if err := json.Unmarshal([]byte(payload), &msg); err != nil {
				slog.Warn("fanout: dropping undecodable message", "error", err)
				continue
			}
			handler(msg)
		}
	}
}
