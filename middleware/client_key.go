package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

func getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header, which can contain multiple IPs.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 && ips[0] != "" {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback: use the remote address, stripping the port if present.
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

// clientKey derives the rate-limit key from the network origin plus a coarse
// client signature, so distinct clients behind one NAT do not fully share a
// counter while a single client cannot escape its own by rotating headers.
func clientKey(c *gin.Context) string {
	ua := c.GetHeader("User-Agent")
	sum := sha256.Sum256([]byte(ua))
	return getClientIP(c) + ":" + hex.EncodeToString(sum[:4])
}
