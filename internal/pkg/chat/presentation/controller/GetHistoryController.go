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

const defaultPageSize = 20

// GetHistoryController handles the message-history endpoint only (one controller per endpoint)
type GetHistoryController struct {
	JoinUC    *usecase.JoinRoomUseCase
	HistoryUC *usecase.GetHistoryUseCase
}

func NewGetHistoryController(joinUC *usecase.JoinRoomUseCase, historyUC *usecase.GetHistoryUseCase) *GetHistoryController {
	return &GetHistoryController{JoinUC: joinUC, HistoryUC: historyUC}
}

// Handle returns a gin handler that pages a room's history, newest first.
// "before" carries the id cursor from the previous page; "limit" caps the
// page size.
func (h *GetHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be an integer"})
			return
		}

		var before *int64
		if raw := c.Query("before"); raw != "" {
			cursor, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "before must be an integer"})
				return
			}
			before = &cursor
		}

		pageSize := defaultPageSize
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
				return
			}
			pageSize = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if _, err := h.JoinUC.Execute(ctx, roomID, auth.MemberID(c)); err != nil {
			respondError(c, err)
			return
		}

		page, err := h.HistoryUC.Execute(ctx, usecase.GetHistoryInput{
			RoomID:     roomID,
			LastSeenID: before,
			PageSize:   pageSize,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}
