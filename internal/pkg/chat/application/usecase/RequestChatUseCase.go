package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// RequestChatInput carries the proposer and the invited member.
type RequestChatInput struct {
	SenderID   int64
	ReceiverID int64
}

// RequestChatUseCase proposes a time-boxed chat invitation. The request key
// is derived from the (sender, receiver) pair, so an identical concurrent
// proposal collides on the existing key. Proposing to a pair that already
// shares an active room is rejected; a pair whose room both sides left may
// be re-invited (accept reactivates the old room).
type RequestChatUseCase struct {
	Repo     repository.ChatRepository
	Requests *store.Requests
}

func NewRequestChatUseCase(repo repository.ChatRepository, requests *store.Requests) *RequestChatUseCase {
	return &RequestChatUseCase{Repo: repo, Requests: requests}
}

func (uc *RequestChatUseCase) Execute(ctx context.Context, in RequestChatInput) (*chat.ChatRequest, error) {
	if in.SenderID == in.ReceiverID {
		return nil, chat.ErrSelfRequest
	}

	exists, err := uc.Requests.Exists(ctx, in.SenderID, in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if exists {
		return nil, chat.ErrDuplicateRequest
	}

	if err := uc.rejectIfActive(ctx, in.SenderID, in.ReceiverID); err != nil {
		return nil, err
	}

	sender, err := uc.findMember(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := uc.findMember(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	req := chat.NewChatRequest(*sender, *receiver)
	if err := uc.Requests.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return req, nil
}

func (uc *RequestChatUseCase) rejectIfActive(ctx context.Context, senderID, receiverID int64) error {
	roomID, err := uc.Repo.FindRoomByMembers(ctx, receiverID, senderID)
	if errors.Is(err, chat.ErrRoomNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	participant, err := uc.Repo.GetParticipant(ctx, roomID, senderID)
	if errors.Is(err, chat.ErrNotAParticipant) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if participant.Active {
		return chat.ErrAlreadyActiveChat
	}
	return nil
}

func (uc *RequestChatUseCase) findMember(ctx context.Context, memberID int64) (*chat.MemberInfo, error) {
	info, err := uc.Repo.FindMember(ctx, memberID)
	if errors.Is(err, chat.ErrMemberNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return info, nil
}
