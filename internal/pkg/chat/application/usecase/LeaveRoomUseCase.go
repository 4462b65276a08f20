package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	chat "staychat/internal/pkg/chat/domain"
	repository "staychat/internal/pkg/chat/persistence/repository/port"
	"staychat/internal/pkg/chat/store"
)

// LeaveRoomInput identifies the member leaving the room.
type LeaveRoomInput struct {
	RoomID   int64
	MemberID int64
}

// LeaveRoomUseCase deactivates the member's participant row (soft leave;
// the row and the history survive a later re-invite), marks everything as
// read on the way out, removes the member from the live membership set so
// further deliveries into the room are rejected, and announces the leave on
// the fan-out topic.
type LeaveRoomUseCase struct {
	Repo       repository.ChatRepository
	Membership *store.Membership
	Fanout     *store.Fanout
}

func NewLeaveRoomUseCase(repo repository.ChatRepository, membership *store.Membership, fanout *store.Fanout) *LeaveRoomUseCase {
	return &LeaveRoomUseCase{Repo: repo, Membership: membership, Fanout: fanout}
}

func (uc *LeaveRoomUseCase) Execute(ctx context.Context, in LeaveRoomInput) error {
	participant, err := uc.Repo.GetParticipant(ctx, in.RoomID, in.MemberID)
	if err != nil {
		if errors.Is(err, chat.ErrNotAParticipant) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if participant.HasLeft() {
		return nil
	}

	if err := uc.Repo.LeaveParticipant(ctx, in.RoomID, in.MemberID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if latest, ok, err := uc.Repo.LatestMessageID(ctx, in.RoomID); err == nil && ok {
		if err := uc.Repo.UpdateLastRead(ctx, in.RoomID, in.MemberID, latest); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	} else if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Membership.RemoveMember(ctx, in.RoomID, in.MemberID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Best-effort notice; the leave itself has already committed.
	name := uc.memberName(ctx, in.MemberID)
	if err := uc.Fanout.Publish(ctx, chat.NewLeaveNotice(in.RoomID, name)); err != nil {
		slog.Warn("leave notice publish failed", "room_id", in.RoomID, "error", err)
	}
	return nil
}

func (uc *LeaveRoomUseCase) memberName(ctx context.Context, memberID int64) string {
	info, err := uc.Repo.FindMember(ctx, memberID)
	if err != nil {
		return "A member"
	}
	return info.Name
}
