package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rateLimitMiddleware rejects a client once it used up its admissions for
// the current window
func (s *Server) rateLimitMiddleware(c *gin.Context) {
	if s.limiter == nil {
		c.Next()
		return
	}

	if !s.limiter.Allow(c.Request.Context(), c.ClientIP()) {
		abortWithEncoding(c, http.StatusTooManyRequests, errorRateLimitExceeded)
		return
	}

	c.Next()
}
