package usecase

import (
	"context"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	"staychat/internal/pkg/chat/store"
)

// SendMessageInput carries the data needed to accept a new message.
type SendMessageInput struct {
	RoomID   int64
	SenderID int64
	Content  string
}

// SendMessageUseCase is the message acceptance path: authorize the sender
// against live membership, check the counterpart is still present, then
// record the message (unread counter, write-behind queue, recency cache)
// and finally publish it to the fan-out topic. Side effects happen only
// after both checks pass, and the publish happens strictly last so other
// processes never see a message whose local effects have not committed.
type SendMessageUseCase struct {
	Membership *store.Membership
	Unread     *store.Unread
	Queue      *store.Queue
	Recent     *store.RecentCache
	Fanout     *store.Fanout
}

func NewSendMessageUseCase(membership *store.Membership, unread *store.Unread, queue *store.Queue, recent *store.RecentCache, fanout *store.Fanout) *SendMessageUseCase {
	return &SendMessageUseCase{
		Membership: membership,
		Unread:     unread,
		Queue:      queue,
		Recent:     recent,
		Fanout:     fanout,
	}
}

// Execute validates and accepts a message, returning it as delivered.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	ok, err := uc.Membership.IsMember(ctx, in.RoomID, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotAParticipant
	}

	// The participant row is the durable source of truth for lifecycle,
	// but the fast membership set is the delivery gate: a room whose
	// counterpart is gone must not accept messages even while the
	// sender's row is still active.
	count, err := uc.Membership.Count(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if count < 2 {
		return nil, chat.ErrParticipantLeft
	}

	msg, err := chat.NewMessage(in.RoomID, in.SenderID, in.Content)
	if err != nil {
		return nil, err
	}

	if opponentID, found := uc.opponent(ctx, in.RoomID, in.SenderID); found {
		if err := uc.Unread.Increment(ctx, in.RoomID, opponentID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if err := uc.Queue.Enqueue(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Recent.Push(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Fanout.Publish(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return msg, nil
}

func (uc *SendMessageUseCase) opponent(ctx context.Context, roomID, senderID int64) (int64, bool) {
	members, err := uc.Membership.Members(ctx, roomID)
	if err != nil {
		return 0, false
	}
	for _, id := range members {
		if id != senderID {
			return id, true
		}
	}
	return 0, false
}
