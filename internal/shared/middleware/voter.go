package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/pkg/jwt"
)

const (
	VoterCookie = "voter_id"

	voterKey       = "voter_id"
	voterCookieAge = 365 * 24 * 60 * 60
)

// VoterIdentity derives the opaque voter id used by the vote ledger. The id
// is never taken from the client: it is either read back from a voter cookie
// this server signed, or computed as a fingerprint of client IP and
// User-Agent. A fresh fingerprint is pinned in a signed cookie.
func VoterIdentity(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(VoterCookie); err == nil && cookie != "" {
			if id, err := tokens.ParseVoterToken(cookie); err == nil {
				c.Set(voterKey, id)
				c.Next()
				return
			}
		}

		id := Fingerprint(c.ClientIP(), c.Request.UserAgent())
		c.Set(voterKey, id)

		if signed, err := tokens.GenerateVoterToken(id); err == nil {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VoterCookie, signed, voterCookieAge, "/", "", c.Request.TLS != nil, true)
		} else {
			log.Warn().Err(err).Msg("Failed to sign voter cookie")
		}
		c.Next()
	}
}

// VoterIDFromContext returns "" when VoterIdentity did not run.
func VoterIDFromContext(c *gin.Context) string {
	return c.GetString(voterKey)
}

// Fingerprint hashes ip and user agent into a stable voter id.
func Fingerprint(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return "fp_" + hex.EncodeToString(sum[:])
}
