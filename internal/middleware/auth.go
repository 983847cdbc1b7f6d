package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/safewalk/safewalk-backend-go/internal/service"
	"github.com/safewalk/safewalk-backend-go/pkg/response"
)

// userIDKey is the gin context key holding the authenticated user ID
const userIDKey = "auth_user_id"

// Auth requires a valid Bearer token and stores the user ID in the context
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, auth)
		if !ok {
			response.Unauthorized(c, "Missing or invalid authorization token")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth stores the user ID when a valid token is present but lets
// anonymous requests through. Used for SOS, which must never be blocked
// on a login.
func OptionalAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, auth); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from the context
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func bearerUserID(c *gin.Context, auth *service.AuthService) (int64, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}

	userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return 0, false
	}
	return userID, true
}
