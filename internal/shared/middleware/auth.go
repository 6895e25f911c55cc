package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/response"
	"fashionmag-backend/pkg/jwt"
)

const actorKey = "actor"

// AuthMiddleware requires a valid bearer token and stores the caller as a
// *shared.Actor in the gin context.
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeader(c, tokens)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}
		if actor == nil {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a token is present and lets anonymous
// requests through. An invalid token is still rejected.
func OptionalAuth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeader(c, tokens)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}
		if actor != nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated caller, or nil for anonymous requests.
func ActorFromContext(c *gin.Context) *shared.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*shared.Actor)
	return actor
}

type authError string

func (e authError) Error() string { return string(e) }

func actorFromHeader(c *gin.Context, tokens *jwt.Manager) (*shared.Actor, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, authError("invalid authorization header format")
	}

	claims, err := tokens.ValidateToken(parts[1])
	if err != nil {
		return nil, authError("invalid token")
	}

	id, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return nil, authError("invalid subject in token")
	}

	return &shared.Actor{ID: id, Email: claims.Email, Role: claims.Role}, nil
}
