package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIPMiddleware resolves the client IP once and stores it in both the
// gin context and the request context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set("client_ip", clientIP)
		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, clientIP)
		c.Request = c.Request.WithContext(ctx)

		log.Debug().
			Str("ip", clientIP).
			Bool("is_private", utils.IsPrivateIP(clientIP)).
			Str("path", c.Request.URL.Path).
			Msg("Client IP extracted")

		c.Next()
	}
}

// GetClientIPFromContext returns "" when ClientIPMiddleware did not run.
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
