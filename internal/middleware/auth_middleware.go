package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/utils"
	"rentit/pkg/logger"
)

// tokenFromRequest looks at the token header first, then a bearer
// Authorization header, then the token query parameter used by websockets.
func tokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("token"); token != "" {
		return token
	}

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}

	return c.Query("token")
}

// AuthRequired middleware validates JWT token and sets user context
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(tokenString, secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.CodeUnauthorized, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		setUserContext(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user context when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := utils.ValidateAccessToken(tokenString, secret); err == nil {
				setUserContext(c, claims)
			}
		}
		c.Next()
	}
}

// AdminRequired middleware ensures user is an admin
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(utils.ContextUserRole)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != string(models.UserRoleAdmin) {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

func setUserContext(c *gin.Context, claims *utils.JWTClaims) {
	c.Set(utils.ContextUserID, claims.UserID)
	c.Set(utils.ContextUserRole, claims.Role)

	c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), claims.UserID))
}

// GetUserID returns the authenticated user ID set by AuthRequired.
func GetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(utils.ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}
