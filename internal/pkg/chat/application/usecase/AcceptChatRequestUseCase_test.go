package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "staychat/internal/pkg/chat/domain"
)

func newAcceptFixture(t *testing.T) (*AcceptChatRequestUseCase, *RequestChatUseCase, *memRepo, *testStores) {
	t.Helper()
	repo := newMemRepo()
	repo.addMember(1, "alice")
	repo.addMember(2, "bob")
	s := newTestStores(t, repo)
	accept := NewAcceptChatRequestUseCase(repo, s.requests, s.membership)
	request := NewRequestChatUseCase(repo, s.requests)
	return accept, request, repo, s
}

func TestAcceptCreatesRoomAndMembership(t *testing.T) {
	accept, request, repo, s := newAcceptFixture(t)
	ctx := context.Background()

	req, err := request.Execute(ctx, RequestChatInput{SenderID: 1, ReceiverID: 2})
	require.NoError(t, err)

	result, err := accept.Execute(ctx, AcceptChatRequestInput{RequestID: req.RequestID, ReceiverID: 2})
	require.NoError(t, err)
	assert.False(t, result.Reactivated)

	exists, err := repo.RoomExists(ctx, result.RoomID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Both members are live immediately.
	n, err := s.membership.Count(ctx, result.RoomID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// The invitation is consumed.
	_, err = s.requests.Get(ctx, req.RequestID)
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)
}

func TestAcceptReactivatesOldRoomWithHistory(t *testing.T) {
	accept, request, repo, _ := newAcceptFixture(t)
	ctx := context.Background()

	oldRoomID := repo.addRoom(1, 2)
	require.NoError(t, repo.InsertMessages(ctx, []chat.Message{{RoomID: oldRoomID, SenderID: 1, Content: "old times"}}))
	require.NoError(t, repo.LeaveParticipant(ctx, oldRoomID, 1))
	require.NoError(t, repo.LeaveParticipant(ctx, oldRoomID, 2))

	req, err := request.Execute(ctx, RequestChatInput{SenderID: 1, ReceiverID: 2})
	require.NoError(t, err)

	result, err := accept.Execute(ctx, AcceptChatRequestInput{RequestID: req.RequestID, ReceiverID: 2})
	require.NoError(t, err)
	assert.True(t, result.Reactivated)
	assert.Equal(t, oldRoomID, result.RoomID)

	// Both sides are active again and the history is still there.
	for _, memberID := range []int64{1, 2} {
		p, err := repo.GetParticipant(ctx, oldRoomID, memberID)
		require.NoError(t, err)
		assert.True(t, p.Active)
	}
	msgs, err := repo.GetMessages(ctx, oldRoomID, nil, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "old times", msgs[0].Content)
}

func TestAcceptRejectsWrongReceiver(t *testing.T) {
	accept, request, _, s := newAcceptFixture(t)
	ctx := context.Background()

	req, err := request.Execute(ctx, RequestChatInput{SenderID: 1, ReceiverID: 2})
	require.NoError(t, err)

	_, err = accept.Execute(ctx, AcceptChatRequestInput{RequestID: req.RequestID, ReceiverID: 1})
	assert.ErrorIs(t, err, chat.ErrNotRequestOwner)

	// The invitation survives a failed accept.
	_, err = s.requests.Get(ctx, req.RequestID)
	assert.NoError(t, err)
}

func TestAcceptMissingRequest(t *testing.T) {
	accept, _, _, _ := newAcceptFixture(t)

	_, err := accept.Execute(context.Background(), AcceptChatRequestInput{
		RequestID:  chat.ChatRequestKey(1, 2),
		ReceiverID: 2,
	})
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)
}

func TestRejectDiscardsInvitation(t *testing.T) {
	_, request, _, s := newAcceptFixture(t)
	reject := NewRejectChatRequestUseCase(s.requests)
	ctx := context.Background()

	req, err := request.Execute(ctx, RequestChatInput{SenderID: 1, ReceiverID: 2})
	require.NoError(t, err)

	// Only the receiver may reject.
	err = reject.Execute(ctx, req.RequestID, 1)
	assert.ErrorIs(t, err, chat.ErrNotRequestOwner)

	require.NoError(t, reject.Execute(ctx, req.RequestID, 2))

	_, err = s.requests.Get(ctx, req.RequestID)
	assert.ErrorIs(t, err, chat.ErrRequestNotFound)
}
