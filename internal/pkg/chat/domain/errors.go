package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrNotAParticipant   = errors.New("chat: sender is not a participant in the room")
	ErrParticipantLeft   = errors.New("chat: the other participant has left the room")
	ErrDuplicateRequest  = errors.New("chat: an identical chat request is already pending")
	ErrSelfRequest       = errors.New("chat: sender and receiver are the same member")
	ErrAlreadyActiveChat = errors.New("chat: an active room already exists for this pair")
	ErrRequestNotFound   = errors.New("chat: chat request not found")
	ErrNotRequestOwner   = errors.New("chat: chat request belongs to a different receiver")
	ErrRoomNotFound      = errors.New("chat: room not found")
	ErrMemberNotFound    = errors.New("chat: member not found")
	ErrEmptyMessage      = errors.New("chat: empty message content")
	ErrEmptyName         = errors.New("chat: empty room name")
)
