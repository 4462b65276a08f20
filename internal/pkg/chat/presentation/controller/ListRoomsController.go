package controller

import (
	"context"
	"net/http"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListRoomsController handles the list-rooms endpoint only (one controller per endpoint)
type ListRoomsController struct {
	UC *usecase.ListRoomsUseCase
}

func NewListRoomsController(uc *usecase.ListRoomsUseCase) *ListRoomsController {
	return &ListRoomsController{UC: uc}
}

// Handle returns a gin handler that lists the caller's rooms with unread counts
func (h *ListRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rooms, err := h.UC.Execute(ctx, auth.MemberID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	}
}
