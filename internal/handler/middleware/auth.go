package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"kilo-share/internal/domain/user"
	"kilo-share/internal/handler/httperr"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/usecase"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxActorKey = "actor"

	AccessTokenCookie = "access_token"
)

var (
	errTokenRequired = errs.New("access token required")
	errAdminRequired = errs.New("admin role required")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	roles          queries.RoleQueries
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, roles queries.RoleQueries) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		roles:          roles,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		actor, err := m.roles.ActorFor(c.Request.Context(), userID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}

		c.Set(ctxActorKey, actor)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).IsAdmin() {
			httperr.AbortWithError(c, http.StatusForbidden, errAdminRequired, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not
// abort on failure; the request then runs as the anonymous actor.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}
		actor, err := m.roles.ActorFor(c.Request.Context(), userID)
		if err != nil {
			slog.Warn("Role lookup failed in optional auth", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxActorKey, actor)
		c.Next()
	}
}

// extractToken prefers the cookie set by the web client over the header.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// GetActor returns the anonymous actor on unauthenticated requests.
func GetActor(c *gin.Context) user.Actor {
	if v, exists := c.Get(ctxActorKey); exists {
		if actor, ok := v.(user.Actor); ok {
			return actor
		}
	}
	return user.Anonymous
}

func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxActorKey, actor)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	actor := GetActor(c)
	return actor.UserID(), actor.IsAuthenticated()
}
