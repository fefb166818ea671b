package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mbuchoff/niche-todo-backend/internal/constants"
	apierrors "github.com/mbuchoff/niche-todo-backend/internal/errors"
	"github.com/mbuchoff/niche-todo-backend/internal/services"
)

// RequireAuth checks for a valid bearer access token and stores the caller's
// user ID in the request context.
func RequireAuth(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokenService.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.Subject)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
