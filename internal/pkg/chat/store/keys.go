package store

import "fmt"

// Redis key layout shared by every server process. Key shapes are part of
// the deployment contract: all instances must agree on them.
const (
	// queueKey is the live write-behind queue; queueWorkingKey is the key
	// it is atomically renamed to at the start of a drain pass.
	queueKey        = "chat:queue"
	queueWorkingKey = "chat:queue:backup"

	// fanoutChannel carries every accepted message to all subscribed
	// server processes.
	fanoutChannel = "chatTopic"
)

func memberSetKey(roomID int64) string {
	return fmt.Sprintf("chat:room:%d:members", roomID)
}

func unreadKey(roomID int64) string {
	return fmt.Sprintf("chat:unread:%d", roomID)
}

func recentCacheKey(roomID int64) string {
	return fmt.Sprintf("chat:cache:%d", roomID)
}
