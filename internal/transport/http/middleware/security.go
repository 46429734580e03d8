package middleware

import "github.com/gin-gonic/gin"

// Security sets response hardening headers. Responses may carry bearer tokens,
// so nothing is cacheable. HSTS is only sent when hsts is true, which the
// router enables outside local development.
func Security(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}
		c.Next()
	}
}
