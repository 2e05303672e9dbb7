package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maelcorre/bistrot-app/utils"
)

// LoggerMiddleware records every request with its latency and status.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		utils.InfoLogger.Printf("%s %s | %d | %s | %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
		)
	}
}
