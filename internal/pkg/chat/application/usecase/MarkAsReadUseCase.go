package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// MarkAsReadInput identifies the member reading the room.
type MarkAsReadInput struct {
	RoomID   int64
	MemberID int64
}

// MarkAsReadUseCase zeroes the member's fast unread counter and advances
// their durable last-read pointer to the room's newest message, together.
// The counter is ephemeral; the pointer is the authoritative cross-device
// read state.
type MarkAsReadUseCase struct {
	Repo   repository.ChatRepository
	Unread *store.Unread
}

func NewMarkAsReadUseCase(repo repository.ChatRepository, unread *store.Unread) *MarkAsReadUseCase {
	return &MarkAsReadUseCase{Repo: repo, Unread: unread}
}

func (uc *MarkAsReadUseCase) Execute(ctx context.Context, in MarkAsReadInput) error {
	if _, err := uc.Repo.GetParticipant(ctx, in.RoomID, in.MemberID); err != nil {
		if errors.Is(err, chat.ErrNotAParticipant) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Unread.Reset(ctx, in.RoomID, in.MemberID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	latest, ok, err := uc.Repo.LatestMessageID(ctx, in.RoomID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		// Nothing durable yet; the pointer stays where it is.
		return nil
	}
	if err := uc.Repo.UpdateLastRead(ctx, in.RoomID, in.MemberID, latest); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
