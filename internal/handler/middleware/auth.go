package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"studiohub/internal/pkg/cookie"
	"studiohub/internal/usecase"
	"studiohub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	userQueries    queries.UserQueries
}

const (
	ctxUserIDKey = "user_id"
	ctxUserKey   = "authorized_user"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, userQueries queries.UserQueries) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		userQueries:    userQueries,
	}
}

// RequireAuth validates the token and loads the party's capability
// flags, so handlers can gate on them without another lookup.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		user, err := m.userQueries.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account not found or deactivated",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserKey, user)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUser(c *gin.Context) (*queries.AuthorizedUserView, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*queries.AuthorizedUserView)
	return user, ok
}
