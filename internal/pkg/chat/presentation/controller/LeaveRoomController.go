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

// LeaveRoomController handles the leave-room endpoint only (one controller per endpoint)
type LeaveRoomController struct {
	UC *usecase.LeaveRoomUseCase
}

func NewLeaveRoomController(uc *usecase.LeaveRoomUseCase) *LeaveRoomController {
	return &LeaveRoomController{UC: uc}
}

// Handle returns a gin handler that soft-leaves the caller from a room
func (h *LeaveRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be an integer"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, usecase.LeaveRoomInput{
			RoomID:   roomID,
			MemberID: auth.MemberID(c),
		}); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "left"})
	}
}
