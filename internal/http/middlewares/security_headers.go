package middlewares

import "github.com/gin-gonic/gin"

// the API only ever serves JSON, so nothing needs to be loadable from it
const contentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-XSS-Protection", "0")
		h.Set("Content-Security-Policy", contentSecurityPolicy)

		c.Next()
	}
}
