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

// RenameRoomController handles the rename-room endpoint only (one controller per endpoint)
type RenameRoomController struct {
	UC *usecase.RenameRoomUseCase
}

func NewRenameRoomController(uc *usecase.RenameRoomUseCase) *RenameRoomController {
	return &RenameRoomController{UC: uc}
}

type renameRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// Handle returns a gin handler that updates the caller's display name for a room
func (h *RenameRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be an integer"})
			return
		}

		var req renameRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, roomID, auth.MemberID(c), req.Name); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "renamed"})
	}
}
