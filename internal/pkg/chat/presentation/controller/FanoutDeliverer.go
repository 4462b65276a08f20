package controller

import (
	"encoding/json"
	"log/slog"

	"staychat/internal/infrastructure/realtime"
	chat "staychat/internal/pkg/chat/domain"
)

// outboundMessage is the frame delivered to subscribed sessions when a
// message arrives on the fan-out topic.
type outboundMessage struct {
	Type    string       `json:"type"`
	RoomID  int64        `json:"roomId"`
	Message chat.Message `json:"message"`
}

// NewFanoutDeliverer bridges the fan-out topic to local websocket sessions.
// Every process runs one; each delivers to the sessions attached to it, so
// together they cover all connected members without any cross-process
// session registry.
func NewFanoutDeliverer(router *realtime.Router) func(chat.Message) {
	return func(msg chat.Message) {
		payload, err := json.Marshal(outboundMessage{
			Type:    "message",
			RoomID:  msg.RoomID,
			Message: msg,
		})
		if err != nil {
			slog.Warn("encode fan-out delivery", "error", err)
			return
		}
		router.Broadcast(roomKey(msg.RoomID), payload, "")
	}
}
