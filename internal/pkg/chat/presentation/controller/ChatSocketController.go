package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"staychat/internal/infrastructure/realtime"
	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"
	chat "staychat/internal/pkg/chat/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatSocketController handles the websocket endpoint for realtime chat traffic.
// Inbound frames carry client intents (join, leave, message, read); delivery
// of accepted messages flows through the fan-out subscriber, never directly
// from this handler, so every process delivers the same stream.
type ChatSocketController struct {
	router          *realtime.Router
	joinRoomUC      *usecase.JoinRoomUseCase
	sendMessageUC   *usecase.SendMessageUseCase
	markAsReadUC    *usecase.MarkAsReadUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(router *realtime.Router, joinUC *usecase.JoinRoomUseCase, sendUC *usecase.SendMessageUseCase, readUC *usecase.MarkAsReadUseCase) *ChatSocketController {
	return &ChatSocketController{
		router:          router,
		joinRoomUC:      joinUC,
		sendMessageUC:   sendUC,
		markAsReadUC:    readUC,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth happens via the token middleware before the upgrade.
		return true
	},
}

type inboundFrame struct {
	Type    string `json:"type"`
	RoomID  int64  `json:"roomId,omitempty"`
	Content string `json:"content,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type      string `json:"type"`
	RoomID    int64  `json:"roomId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := auth.MemberID(c)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(strconv.FormatInt(memberID, 10), ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, memberID, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			case "message":
				ctl.handleMessage(c, conn, memberID, frame)
			case "read":
				ctl.handleRead(c, conn, memberID, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, memberID int64, frame inboundFrame) {
	if frame.RoomID == 0 {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if _, err := ctl.joinRoomUC.Execute(ctx, frame.RoomID, memberID); err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ctl.router.Join(roomKey(frame.RoomID), conn)

	if payload, err := json.Marshal(ackFrame{Type: "joined", RoomID: frame.RoomID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == 0 {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}
	ctl.router.Leave(roomKey(frame.RoomID), conn)

	if payload, err := json.Marshal(ackFrame{Type: "left", RoomID: frame.RoomID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleMessage(c *gin.Context, conn *realtime.Connection, memberID int64, frame inboundFrame) {
	if frame.RoomID == 0 {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		RoomID:   frame.RoomID,
		SenderID: memberID,
		Content:  frame.Content,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	// Delivery to subscribed sessions, this one included, arrives via the
	// fan-out subscriber. Only the acceptance ack goes back directly.
	if payload, err := json.Marshal(ackFrame{Type: "accepted", RoomID: frame.RoomID, MessageID: msg.MessageID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleRead(c *gin.Context, conn *realtime.Connection, memberID int64, frame inboundFrame) {
	if frame.RoomID == 0 {
		ctl.replyError(conn, "bad_request", "roomId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if err := ctl.markAsReadUC.Execute(ctx, usecase.MarkAsReadInput{RoomID: frame.RoomID, MemberID: memberID}); err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	if payload, err := json.Marshal(ackFrame{Type: "read", RoomID: frame.RoomID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, chat.ErrNotAParticipant):
		ctl.replyError(conn, "forbidden", "member is not a participant in this room")
	case errors.Is(err, chat.ErrParticipantLeft):
		ctl.replyError(conn, "gone", "the other participant has left")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

// roomKey is the realtime router's room identifier for a chat room.
func roomKey(roomID int64) string {
	return strconv.FormatInt(roomID, 10)
}
