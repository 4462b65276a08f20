package controller

import (
	"context"
	"net/http"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// RejectChatRequestController handles the reject-invitation endpoint only (one controller per endpoint)
type RejectChatRequestController struct {
	UC *usecase.RejectChatRequestUseCase
}

func NewRejectChatRequestController(uc *usecase.RejectChatRequestUseCase) *RejectChatRequestController {
	return &RejectChatRequestController{UC: uc}
}

// Handle returns a gin handler that rejects and discards a pending invitation
func (h *RejectChatRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("requestId")
		if requestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requestId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, requestID, auth.MemberID(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "rejected"})
	}
}
