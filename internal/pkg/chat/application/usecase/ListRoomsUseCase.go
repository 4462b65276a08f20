package usecase

import (
	"context"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// ListRoomsUseCase lists a member's rooms with the counterpart's profile,
// the last durable message preview and the member's unread counter.
type ListRoomsUseCase struct {
	Repo   repository.ChatRepository
	Unread *store.Unread
}

func NewListRoomsUseCase(repo repository.ChatRepository, unread *store.Unread) *ListRoomsUseCase {
	return &ListRoomsUseCase{Repo: repo, Unread: unread}
}

func (uc *ListRoomsUseCase) Execute(ctx context.Context, memberID int64) ([]chat.RoomSummary, error) {
	summaries, err := uc.Repo.ListRoomsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for i := range summaries {
		count, err := uc.Unread.Get(ctx, summaries[i].RoomID, memberID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		summaries[i].UnreadCount = count
	}
	return summaries, nil
}
