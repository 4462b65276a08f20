package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
)

// RenameRoomUseCase updates the caller's private display name for a room.
// The name is per participant; the counterpart keeps their own.
type RenameRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewRenameRoomUseCase(repo repository.ChatRepository) *RenameRoomUseCase {
	return &RenameRoomUseCase{Repo: repo}
}

func (uc *RenameRoomUseCase) Execute(ctx context.Context, roomID, memberID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return chat.ErrEmptyName
	}
	updated, err := uc.Repo.UpdateCustomName(ctx, roomID, memberID, name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if updated == 0 {
		return chat.ErrNotAParticipant
	}
	return nil
}
