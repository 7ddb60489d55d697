package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"repo-relay/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth admits requests carrying the configured operator token as a bearer
// credential. With no token configured every request is refused.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || m.apiToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.apiToken)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected %s %s from %s", c.Request.Method, c.FullPath(), c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
