package middleware

import (
	"time"

	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if uid, ok := c.Get("userID"); ok {
			fields = append(fields, zap.Any("userID", uid))
		}
		if c.Writer.Status() >= 500 {
			utils.GetLogger().Error("Request", fields...)
			return
		}
		utils.GetLogger().Info("Request", fields...)
	}
}
