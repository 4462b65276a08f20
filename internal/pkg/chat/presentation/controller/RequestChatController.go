package controller

import (
	"context"
	"net/http"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// RequestChatController handles the propose-chat endpoint only (one controller per endpoint)
type RequestChatController struct {
	UC *usecase.RequestChatUseCase
}

func NewRequestChatController(uc *usecase.RequestChatUseCase) *RequestChatController {
	return &RequestChatController{UC: uc}
}

type requestChatRequest struct {
	ReceiverID int64 `json:"receiverId" binding:"required"`
}

// Handle returns a gin handler that proposes a chat to another member
func (h *RequestChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requestChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		created, err := h.UC.Execute(ctx, usecase.RequestChatInput{
			SenderID:   auth.MemberID(c),
			ReceiverID: req.ReceiverID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}
