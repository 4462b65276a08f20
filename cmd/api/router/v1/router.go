package v1

import (
	"staychat/internal/infrastructure/realtime"
	"staychat/internal/pkg/auth"
	httpHandler "staychat/internal/pkg/chat/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, stores *httpHandler.Stores, router *realtime.Router, verifier *auth.TokenVerifier) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, pool, stores, router, verifier)
}
