package chat

import "time"

// Room is a two-party conversation context. Identity only; all mutable
// state lives on the participants.
type Room struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// RoomSummary is the room-list projection for one member: the counterpart's
// display info, the latest message, and the member's unread count.
type RoomSummary struct {
	RoomID          int64      `json:"roomId"`
	CustomRoomName  string     `json:"customRoomName"`
	OtherMemberID   int64      `json:"otherMemberId"`
	OtherMemberName string     `json:"otherMemberName"`
	OtherProfileURL string     `json:"otherProfileUrl"`
	OtherActive     bool       `json:"otherActive"`
	LastMessage     *string    `json:"lastMessage,omitempty"`
	LastMessageAt   *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount     int64      `json:"unreadCount"`
}
