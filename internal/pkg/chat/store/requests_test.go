package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "staychat/internal/pkg/chat/domain"
)

func newPendingRequest(t *testing.T, r *Requests, senderID, receiverID int64) *chat.ChatRequest {
	t.Helper()
	req := chat.NewChatRequest(
		chat.MemberInfo{ID: senderID, Name: "sender"},
		chat.MemberInfo{ID: receiverID, Name: "receiver"},
	)
	require.NoError(t, r.Save(context.Background(), req))
	return req
}

func TestRequestsSaveAndGet(t *testing.T) {
	mr, cache := newTestCache(t)
	r := NewRequests(cache)
	ctx := context.Background()

	req := newPendingRequest(t, r, 1, 2)

	got, err := r.Get(ctx, req.RequestID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.SenderID)
	assert.Equal(t, int64(2), got.ReceiverID)

	ok, err := r.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, chat.ChatRequestTTL, mr.TTL(req.RequestID))
}

func TestRequestsGetMissingReturnsNotFound(t *testing.T) {
	_, cache := newTestCache(t)
	r := NewRequests(cache)

	_, err := r.Get(context.Background(), chat.ChatRequestKey(1, 2))
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)
}

func TestRequestsExpiryActsAsWithdrawal(t *testing.T) {
	mr, cache := newTestCache(t)
	r := NewRequests(cache)
	ctx := context.Background()

	req := newPendingRequest(t, r, 1, 2)
	mr.FastForward(chat.ChatRequestTTL + 1)

	_, err := r.Get(ctx, req.RequestID)
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)

	ok, err := r.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestsReceivedAndSent(t *testing.T) {
	_, cache := newTestCache(t)
	r := NewRequests(cache)
	ctx := context.Background()

	newPendingRequest(t, r, 1, 2)
	newPendingRequest(t, r, 3, 2)
	newPendingRequest(t, r, 2, 4)

	received, err := r.Received(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	sent, err := r.Sent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, int64(4), sent[0].ReceiverID)
}

func TestRequestsDelete(t *testing.T) {
	_, cache := newTestCache(t)
	r := NewRequests(cache)
	ctx := context.Background()

	req := newPendingRequest(t, r, 1, 2)
	require.NoError(t, r.Delete(ctx, req.RequestID))

	_, err := r.Get(ctx, req.RequestID)
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)
}
