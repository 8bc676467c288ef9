package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/repository"
)

// userContextKey is the gin context key holding the authenticated user
const userContextKey = "current_user"

// ITokenValidator abstracts token validation for the auth middleware
type ITokenValidator interface {
	Validate(tokenStr string) (jwt.MapClaims, error)
}

// RequireAuth rejects requests without a valid token and loads the
// authenticated user into the context. Inactive users are rejected as if
// unauthenticated.
func RequireAuth(tokens ITokenValidator, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := ResolveUser(c, tokens, users)
		if err != nil {
			apperrors.AbortWith(c, err)
			return
		}
		SetUser(c, user)
		c.Next()
	}
}

// RequireSuperuser rejects authenticated users without the superuser flag.
// Must run after RequireAuth.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			apperrors.AbortWith(c, apperrors.ErrUnauthorized)
			return
		}
		if !user.IsSuperuser {
			apperrors.AbortWith(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// ResolveUser extracts and validates the request's token, then loads the
// user row. It is used both by RequireAuth and by the WebSocket handler,
// which needs to inspect identity before deciding to close the connection.
func ResolveUser(c *gin.Context, tokens ITokenValidator, users repository.UserRepository) (*models.User, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := tokens.Validate(tokenStr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := users.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}
	return user, nil
}

// SetUser stores the authenticated user on the context
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// UserFromContext returns the user loaded by RequireAuth, or nil
func UserFromContext(c *gin.Context) *models.User {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// extractToken looks for a bearer token in the Authorization header, then
// the access_token cookie, then the token query parameter (used by the
// WebSocket endpoint, where browsers cannot set headers).
func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}
