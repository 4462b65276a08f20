package chat

import (
	"fmt"
	"time"
)

// ChatRequestTTL bounds how long an invitation stays open. Expiry is
// enforced by the fast store's key TTL; there is no separate expiry signal.
const ChatRequestTTL = 24 * time.Hour

// ChatRequest is a time-boxed invitation preceding room creation. It lives
// only in the fast store, keyed deterministically by the (sender, receiver)
// pair so a duplicate proposal maps onto the existing key.
type ChatRequest struct {
	RequestID          string    `json:"requestId"`
	SenderID           int64     `json:"senderId"`
	SenderName         string    `json:"senderName"`
	SenderProfileURL   string    `json:"senderProfileUrl"`
	ReceiverID         int64     `json:"receiverId"`
	ReceiverName       string    `json:"receiverName"`
	ReceiverProfileURL string    `json:"receiverProfileUrl"`
	CreatedAt          time.Time `json:"createdAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// NewChatRequest builds an invitation from sender to receiver.
func NewChatRequest(sender, receiver MemberInfo) *ChatRequest {
	now := time.Now().UTC()
	return &ChatRequest{
		RequestID:          ChatRequestKey(sender.ID, receiver.ID),
		SenderID:           sender.ID,
		SenderName:         sender.Name,
		SenderProfileURL:   sender.ProfileURL,
		ReceiverID:         receiver.ID,
		ReceiverName:       receiver.Name,
		ReceiverProfileURL: receiver.ProfileURL,
		CreatedAt:          now,
		ExpiresAt:          now.Add(ChatRequestTTL),
	}
}

// ChatRequestKey derives the fast-store key for an invitation. The request
// id exposed to clients is the key itself.
func ChatRequestKey(senderID, receiverID int64) string {
	return fmt.Sprintf("chat:chatRequest:%d:%d", senderID, receiverID)
}
