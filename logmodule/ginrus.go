package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ginrus logs every request handled by the group with the given prefix.
// Errors attached to the gin context are logged at error level.
func Ginrus(prefix string) gin.HandlerFunc {
	log := logrus.WithField("prefix", prefix)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency":    time.Since(start),
			"user-agent": c.Request.UserAgent(),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypeAny).String())
			return
		}

		if c.Writer.Status() >= 500 {
			entry.Warn("request failed")
		} else {
			entry.Info("request served")
		}
	}
}
