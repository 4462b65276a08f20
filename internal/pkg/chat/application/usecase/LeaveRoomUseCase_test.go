package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "staychat/internal/pkg/chat/domain"
)

func TestLeaveRoomDeactivatesAndBlocksDelivery(t *testing.T) {
	repo := newMemRepo()
	repo.addMember(10, "alice")
	repo.addMember(20, "bob")
	roomID := repo.addRoom(10, 20)
	s := newTestStores(t, repo)
	leave := NewLeaveRoomUseCase(repo, s.membership, s.fanout)
	send := NewSendMessageUseCase(s.membership, s.unread, s.queue, s.recent, s.fanout)
	ctx := context.Background()

	// Prime the membership set, then record a durable message to read out.
	_, err := send.Execute(ctx, SendMessageInput{RoomID: roomID, SenderID: 10, Content: "before leave"})
	require.NoError(t, err)
	require.NoError(t, repo.InsertMessages(ctx, []chat.Message{{RoomID: roomID, SenderID: 10, Content: "before leave"}}))

	require.NoError(t, leave.Execute(ctx, LeaveRoomInput{RoomID: roomID, MemberID: 20}))

	p, err := repo.GetParticipant(ctx, roomID, 20)
	require.NoError(t, err)
	assert.False(t, p.Active)
	require.NotNil(t, p.LastReadMessageID)
	assert.Equal(t, int64(1), *p.LastReadMessageID)

	// The counterpart can no longer deliver into the room.
	_, err = send.Execute(ctx, SendMessageInput{RoomID: roomID, SenderID: 10, Content: "hello?"})
	assert.ErrorIs(t, err, chat.ErrParticipantLeft)
}

func TestLeaveRoomAlreadyLeftIsNoop(t *testing.T) {
	repo := newMemRepo()
	repo.addMember(10, "alice")
	repo.addMember(20, "bob")
	roomID := repo.addRoom(10, 20)
	s := newTestStores(t, repo)
	leave := NewLeaveRoomUseCase(repo, s.membership, s.fanout)
	ctx := context.Background()

	require.NoError(t, leave.Execute(ctx, LeaveRoomInput{RoomID: roomID, MemberID: 20}))
	assert.NoError(t, leave.Execute(ctx, LeaveRoomInput{RoomID: roomID, MemberID: 20}))
}

func TestLeaveRoomUnknownParticipant(t *testing.T) {
	repo := newMemRepo()
	s := newTestStores(t, repo)
	leave := NewLeaveRoomUseCase(repo, s.membership, s.fanout)

	err := leave.Execute(context.Background(), LeaveRoomInput{RoomID: 1, MemberID: 99})
	assert.ErrorIs(t, err, chat.ErrNotAParticipant)
}
