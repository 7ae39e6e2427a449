package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleetops/internal/utils"
)

// Logger prints one structured line per request including request_id and,
// behind BearerAuth, the token subject.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		entry := utils.Log.WithFields(logrus.Fields{
			"module":     "HTTP",
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": float64(latency.Microseconds()) / 1000.0,
			"ip":         c.ClientIP(),
		})
		if sub := GetSubject(c); sub != "" {
			entry = entry.WithField("subject", sub)
		}
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}
