package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// AcceptChatRequestInput identifies the accepted request and the caller,
// who must be the invited receiver.
type AcceptChatRequestInput struct {
	RequestID  string
	ReceiverID int64
}

// AcceptChatRequestResult reports the room the pair ended up in.
type AcceptChatRequestResult struct {
	RoomID      int64 `json:"roomId"`
	Reactivated bool  `json:"reactivated"`
}

// AcceptChatRequestUseCase consumes an invitation and obtains the pair's
// room: an existing room (from a prior, since-left relationship) has both
// participants reactivated so the old history stays reachable; otherwise a
// fresh room with its two participant rows is created. Both members are
// then put into the live membership set.
type AcceptChatRequestUseCase struct {
	Repo       repository.ChatRepository
	Requests   *store.Requests
	Membership *store.Membership
}

func NewAcceptChatRequestUseCase(repo repository.ChatRepository, requests *store.Requests, membership *store.Membership) *AcceptChatRequestUseCase {
	return &AcceptChatRequestUseCase{Repo: repo, Requests: requests, Membership: membership}
}

func (uc *AcceptChatRequestUseCase) Execute(ctx context.Context, in AcceptChatRequestInput) (*AcceptChatRequestResult, error) {
	req, err := uc.Requests.Get(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, chat.ErrRequestNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if req.ReceiverID != in.ReceiverID {
		return nil, chat.ErrNotRequestOwner
	}

	if err := uc.Requests.Delete(ctx, in.RequestID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	roomID, reactivated, err := uc.getOrCreateRoom(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.Membership.AddMembers(ctx, roomID, req.SenderID, req.ReceiverID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &AcceptChatRequestResult{RoomID: roomID, Reactivated: reactivated}, nil
}

func (uc *AcceptChatRequestUseCase) getOrCreateRoom(ctx context.Context, req *chat.ChatRequest) (int64, bool, error) {
	roomID, err := uc.Repo.FindRoomByMembers(ctx, req.ReceiverID, req.SenderID)
	if err == nil {
		for _, memberID := range []int64{req.ReceiverID, req.SenderID} {
			if err := uc.reactivateIfLeft(ctx, roomID, memberID); err != nil {
				return 0, false, err
			}
		}
		return roomID, true, nil
	}
	if !errors.Is(err, chat.ErrRoomNotFound) {
		return 0, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sender := chat.MemberInfo{ID: req.SenderID, Name: req.SenderName, ProfileURL: req.SenderProfileURL}
	receiver := chat.MemberInfo{ID: req.ReceiverID, Name: req.ReceiverName, ProfileURL: req.ReceiverProfileURL}
	roomID, err = uc.Repo.CreateRoomWithParticipants(ctx, sender, receiver)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return roomID, false, nil
}

func (uc *AcceptChatRequestUseCase) reactivateIfLeft(ctx context.Context, roomID, memberID int64) error {
	participant, err := uc.Repo.GetParticipant(ctx, roomID, memberID)
	if err != nil {
		if errors.Is(err, chat.ErrNotAParticipant) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !participant.HasLeft() {
		return nil
	}
	if err := uc.Repo.ReactivateParticipant(ctx, roomID, memberID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
