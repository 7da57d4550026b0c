package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/workflow"
)

// Gin context keys set by the middleware.
const (
	ContextClaimsKey = "auth_claims"
	ContextActorKey  = "auth_actor"
)

// Middleware validates the Authorization bearer token and stores the
// claims and workflow actor on the request context.
func Middleware(manager *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing or malformed authorization header",
			})
			return
		}

		claims, err := manager.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextActorKey, claims.Actor())
		c.Next()
	}
}

// RequireAdmin rejects requests from non-administrative actors.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "authentication required",
			})
			return
		}

		if !actor.Role.Admin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "administrator access required",
			})
			return
		}
		c.Next()
	}
}

// ActorFrom returns the workflow actor stored by the middleware.
func ActorFrom(c *gin.Context) (workflow.Actor, bool) {
	value, exists := c.Get(ContextActorKey)
	if !exists {
		return workflow.Actor{}, false
	}
	actor, ok := value.(workflow.Actor)
	return actor, ok
}

// ClaimsFrom returns the token claims stored by the middleware.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}

// extractToken pulls the bearer token from the Authorization header,
// falling back to the token query parameter for websocket upgrades.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}
