package controller

import (
	"errors"
	"net/http"

	chat "staychat/internal/pkg/chat/domain"
	"staychat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinel errors to HTTP statuses. Persistence
// errors hide their detail behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	case errors.Is(err, chat.ErrNotAParticipant), errors.Is(err, chat.ErrNotRequestOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrRequestNotFound), errors.Is(err, chat.ErrRoomNotFound),
		errors.Is(err, chat.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrDuplicateRequest), errors.Is(err, chat.ErrAlreadyActiveChat):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
