package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

var privateIPBlocks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"fc00::/7",
)

// ExtractClientIP returns the caller's IP, in order of preference:
// first X-Forwarded-For entry, X-Real-IP, then RemoteAddr.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
		if isValidIP(clientIP) {
			return clientIP
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); isValidIP(xri) {
		return xri
	}

	remoteAddr := c.Request.RemoteAddr
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	if isValidIP(ip) {
		return ip
	}

	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}

// IsPrivateIP reports loopback and RFC 1918 / RFC 4193 addresses.
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	if parsed.IsLoopback() {
		return true
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsed) {
			return true
		}
	}
	return false
}

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, block, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		out = append(out, block)
	}
	return out
}
