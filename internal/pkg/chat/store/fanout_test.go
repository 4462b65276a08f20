package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "staychat/internal/pkg/chat/domain"
)

func TestFanoutPublishReachesSubscriber(t *testing.T) {
	_, cache := newTestCache(t)
	f := NewFanout(cache)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan chat.Message, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.Run(ctx, func(msg chat.Message) {
			select {
			case got <- msg:
			default:
			}
		})
	}()

	// Subscribe is synchronous inside Run but Run itself is not, so give
	// the goroutine a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	msg, err := chat.NewMessage(9, 10, "over the wire")
	require.NoError(t, err)
	require.NoError(t, f.Publish(context.Background(), msg))

	select {
	case delivered := <-got:
		assert.Equal(t, "over the wire", delivered.Content)
		assert.Equal(t, int64(9), delivered.RoomID)
		assert.Equal(t, msg.MessageID, delivered.MessageID)
	case <-time.After(2 * time.Second):
		t.Fatal("message never delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop on cancel")
	}
}
