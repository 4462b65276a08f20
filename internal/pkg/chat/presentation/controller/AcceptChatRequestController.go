package controller

import (
	"context"
	"net/http"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// AcceptChatRequestController handles the accept-invitation endpoint only (one controller per endpoint)
type AcceptChatRequestController struct {
	UC *usecase.AcceptChatRequestUseCase
}

func NewAcceptChatRequestController(uc *usecase.AcceptChatRequestUseCase) *AcceptChatRequestController {
	return &AcceptChatRequestController{UC: uc}
}

// Handle returns a gin handler that accepts a pending invitation and
// responds with the resulting room
func (h *AcceptChatRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("requestId")
		if requestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requestId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, usecase.AcceptChatRequestInput{
			RequestID:  requestID,
			ReceiverID: auth.MemberID(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
