package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "staychat/internal/pkg/chat/domain"
)

func newSendFixture(t *testing.T) (*SendMessageUseCase, *memRepo, *testStores, int64) {
	t.Helper()
	repo := newMemRepo()
	repo.addMember(10, "alice")
	repo.addMember(20, "bob")
	roomID := repo.addRoom(10, 20)
	s := newTestStores(t, repo)
	uc := NewSendMessageUseCase(s.membership, s.unread, s.queue, s.recent, s.fanout)
	return uc, repo, s, roomID
}

func TestSendMessageAcceptsAndStages(t *testing.T) {
	uc, _, s, roomID := newSendFixture(t)
	ctx := context.Background()

	msg, err := uc.Execute(ctx, SendMessageInput{RoomID: roomID, SenderID: 10, Content: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.NotEmpty(t, msg.MessageID)
	assert.Zero(t, msg.ID)

	batch, ok, err := s.queue.ClaimBatch(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, batch, 1)
	assert.Equal(t, "hello", batch[0].Content)

	cached, err := s.recent.List(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	// Only the recipient's counter moved.
	n, err := s.unread.Get(ctx, roomID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.unread.Get(ctx, roomID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSendMessageRejectsNonMemberWithoutSideEffects(t *testing.T) {
	uc, _, s, roomID := newSendFixture(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, SendMessageInput{RoomID: roomID, SenderID: 99, Content: "hi"})
	assert.ErrorIs(t, err, chat.ErrNotAParticipant)

	_, ok, err := s.queue.ClaimBatch(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	cached, err := s.recent.List(ctx, roomID)
	require.NoError(t, err)
	assert.Empty(t, cached)

	n, err := s.unread.Get(ctx, roomID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSendMessageRejectsWhenCounterpartLeft(t *testing.T) {
	uc, repo, s, roomID := newSendFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.LeaveParticipant(ctx, roomID, 20))

	_, err := uc.Execute(ctx, SendMessageInput{RoomID: roomID, SenderID: 10, Content: "anyone there"})
	assert.ErrorIs(t, err, chat.ErrParticipantLeft)

	_, ok, err := s.queue.ClaimBatch(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	uc, _, _, roomID := newSendFixture(t)

	_, err := uc.Execute(context.Background(), SendMessageInput{RoomID: roomID, SenderID: 10, Content: "   "})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}
