package repository

import (
	"context"

	chat "staychat/internal/pkg/chat/domain"
)

// ChatRepository defines the durable-store boundary of the chat core: room
// and participant lifecycle, batched message inserts for the write-behind
// drain, and cursor-paged message reads. Implementations return the chat
// package's sentinel errors for missing rows.
type ChatRepository interface {
	// CreateRoomWithParticipants creates a room and its two participant
	// rows together in one transaction and returns the new room id.
	CreateRoomWithParticipants(ctx context.Context, sender, receiver chat.MemberInfo) (int64, error)

	// FindRoomByMembers returns the id of the room shared by the two
	// members, or chat.ErrRoomNotFound.
	FindRoomByMembers(ctx context.Context, memberA, memberB int64) (int64, error)

	// RoomExists reports whether the room id resolves to a room.
	RoomExists(ctx context.Context, roomID int64) (bool, error)

	// GetParticipant returns the (room, member) row, or chat.ErrNotAParticipant.
	GetParticipant(ctx context.Context, roomID, memberID int64) (*chat.Participant, error)

	// ReactivateParticipant flips a left participant back to active.
	ReactivateParticipant(ctx context.Context, roomID, memberID int64) error

	// LeaveParticipant marks the participant as left.
	LeaveParticipant(ctx context.Context, roomID, memberID int64) error

	// UpdateCustomName sets the member's display name for the room and
	// returns the number of rows updated.
	UpdateCustomName(ctx context.Context, roomID, memberID int64, name string) (int64, error)

	// ActiveParticipantIDs returns the ids of the room's active members.
	ActiveParticipantIDs(ctx context.Context, roomID int64) ([]int64, error)

	// UpdateLastRead advances the participant's last-read pointer.
	UpdateLastRead(ctx context.Context, roomID, memberID, messageID int64) error

	// LatestMessageID returns the newest durable message id of the room;
	// ok is false when the room has no durable messages yet.
	LatestMessageID(ctx context.Context, roomID int64) (id int64, ok bool, err error)

	// InsertMessages persists a drain batch in one transaction.
	InsertMessages(ctx context.Context, msgs []chat.Message) error

	// GetMessages returns up to limit messages of the room ordered by id
	// descending; when before is non-nil only rows with id < *before.
	GetMessages(ctx context.Context, roomID int64, before *int64, limit int) ([]chat.Message, error)

	// ListRoomsByMember returns room summaries for the member's rooms.
	ListRoomsByMember(ctx context.Context, memberID int64) ([]chat.RoomSummary, error)

	// FindMember resolves a member's display info, or chat.ErrMemberNotFound.
	FindMember(ctx context.Context, memberID int64) (*chat.MemberInfo, error)
}
