package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message as it travels through the system.
//
// A message is born on the accept path with a generated MessageID and a
// timestamp, and only receives its durable ID once the write-behind queue
// has been drained into the relational store. Rows read back from the
// store carry ID but no MessageID; ID is authoritative for history cursors.
type Message struct {
	ID        int64     `json:"id,omitempty"`
	MessageID string    `json:"messageId,omitempty"`
	RoomID    int64     `json:"roomId"`
	SenderID  int64     `json:"senderId,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Left      bool      `json:"left,omitempty"`
}

// NewMessage builds a validated message ready to enqueue, cache and publish.
func NewMessage(roomID, senderID int64, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		MessageID: uuid.NewString(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}, nil
}

// NewLeaveNotice builds the system message announcing that a member left.
func NewLeaveNotice(roomID int64, memberName string) *Message {
	return &Message{
		RoomID:    roomID,
		Content:   memberName + " left the conversation",
		Timestamp: time.Now().UTC(),
		Left:      true,
	}
}
