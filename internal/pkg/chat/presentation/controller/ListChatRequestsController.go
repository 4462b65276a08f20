package controller

import (
	"context"
	"net/http"
	"time"

	"staychat/internal/pkg/auth"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListChatRequestsController handles the list-invitations endpoints only (one controller per endpoint pair)
type ListChatRequestsController struct {
	UC *usecase.ListChatRequestsUseCase
}

func NewListChatRequestsController(uc *usecase.ListChatRequestsUseCase) *ListChatRequestsController {
	return &ListChatRequestsController{UC: uc}
}

// HandleReceived returns a gin handler that lists invitations addressed to the caller
func (h *ListChatRequestsController) HandleReceived() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		reqs, err := h.UC.Received(ctx, auth.MemberID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": reqs})
	}
}

// HandleSent returns a gin handler that lists invitations the caller proposed
func (h *ListChatRequestsController) HandleSent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		reqs, err := h.UC.Sent(ctx, auth.MemberID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": reqs})
	}
}
