package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daybook-app/daybook-web/internal/app/session"
)

// SessionContextKey is where the per-request session lives in the gin context.
const SessionContextKey = "session"

// RequestID tags every request with an X-Request-Id header so the request
// logger can correlate lines. Inbound IDs from a fronting proxy are kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Captcha images arrive as data: URIs, entry images as same-origin
		// proxied binaries, so img-src needs both.
		csp := "default-src 'self'; " +
			"script-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// GetSession extracts the per-request session from the gin context. Returns
// nil on routes outside the session middleware.
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}

	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
