package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
)

// JoinRoomUseCase validates that a member may attach a live session to a
// room. The durable participant row is the authority here, not the cached
// membership set, so a stale cache cannot admit a member who already left.
type JoinRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinRoomUseCase(repo repository.ChatRepository) *JoinRoomUseCase {
	return &JoinRoomUseCase{Repo: repo}
}

func (uc *JoinRoomUseCase) Execute(ctx context.Context, roomID, memberID int64) (*chat.Participant, error) {
	participant, err := uc.Repo.GetParticipant(ctx, roomID, memberID)
	if err != nil {
		if errors.Is(err, chat.ErrNotAParticipant) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if participant.HasLeft() {
		return nil, chat.ErrNotAParticipant
	}
	return participant, nil
}
