package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Chakraaaa/taskflow/internal/infra/security"
	"github.com/Chakraaaa/taskflow/internal/usecase"
)

// TokenParser validates bearer tokens for protected routes.
type TokenParser interface {
	ParseAccessToken(ctx context.Context, token string) (*security.AccessClaims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user ID in the request context.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "authorization required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "invalid authorization header")
			return
		}

		claims, err := tokens.ParseAccessToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrExpiredAccessToken):
				unauthorized(c, "access token expired")
			default:
				unauthorized(c, "invalid access token")
			}
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetAuthenticatedUserID returns the user ID stored by RequireAuth.
func GetAuthenticatedUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
