package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shutterdesk-be/internal/metrics"
)

// RequestID tags every request with an id, honoring one the client already
// carries, and echoes it back in the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), reqID))
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// Requests logs every HTTP request with its status and duration.
func Requests() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := metrics.StartTimer()
		c.Next()

		FromCtx(c.Request.Context()).Info("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("duration_ms", timer.Duration()),
		)
	}
}
