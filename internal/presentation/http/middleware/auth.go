package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID      = "user_id"
	ContextPermissions = "user_permissions"
)

// AuthMiddleware validates the bearer token minted by the identity service
// and stores its user on the context
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Error(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPermissions, claims.Permissions)
		c.Next()
	}
}

// bearerToken extracts the token of a "Bearer <token>" header. When there is
// none it returns the reason instead.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "Authorization header is required"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.Contains(token, " ") {
		return "", "Invalid authorization header format"
	}
	return token, ""
}

// UserID returns the authenticated user of the request
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// RequirePermission lets a request through when its token grants any of permissions
func RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted := c.GetStringSlice(ContextPermissions)
		if slices.ContainsFunc(permissions, func(p string) bool { return slices.Contains(granted, p) }) {
			c.Next()
			return
		}
		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}
