package middleware

import (
	"github.com/ErlanBelekov/projecthub/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID attaches a correlation ID to the request context and echoes it
// in the response. A well-formed incoming X-Request-ID is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.Resolve(c.GetHeader(requestid.Header))

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
