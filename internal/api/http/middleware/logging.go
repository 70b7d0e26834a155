package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auraboard/auraboard-server/internal/logger"
)

// Logging logs every handled request with method, path, status and duration.
func Logging(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := l.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path)

		c.Next()

		reqLog.Info("request handled",
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}
