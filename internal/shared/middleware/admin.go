package middleware

import (
	"github.com/gin-gonic/gin"

	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/response"
)

// RequireRole allows the request through when the actor set by
// AuthMiddleware has one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor == nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "access denied: insufficient role")
		c.Abort()
	}
}

// AdminMiddleware is RequireRole(admin)
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole(shared.RoleAdmin)
}
