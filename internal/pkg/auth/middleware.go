package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const memberIDContextKey = "auth.memberId"

// Middleware authenticates requests with a Bearer token. Websocket clients
// cannot set headers from the browser API, so a "token" query parameter is
// accepted as a fallback.
func Middleware(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}

		memberID, err := verifier.MemberID(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		c.Set(memberIDContextKey, memberID)
		c.Next()
	}
}

// MemberID returns the authenticated member id placed by Middleware.
func MemberID(c *gin.Context) int64 {
	id, _ := c.Get(memberIDContextKey)
	memberID, _ := id.(int64)
	return memberID
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
