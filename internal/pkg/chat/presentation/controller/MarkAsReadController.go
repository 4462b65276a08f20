package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// MarkAsReadController handles the mark-as-read endpoint only (one controller per endpoint)
type MarkAsReadController struct {
	UC *usecase.MarkAsReadUseCase
}

func NewMarkAsReadController(uc *usecase.MarkAsReadUseCase) *MarkAsReadController {
	return &MarkAsReadController{UC: uc}
}

// Handle returns a gin handler that zeroes the caller's unread counter and
// advances their last-read pointer
func (h *MarkAsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be an integer"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, usecase.MarkAsReadInput{
			RoomID:   roomID,
			MemberID: auth.MemberID(c),
		}); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "read"})
	}
}
