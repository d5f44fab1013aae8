package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/pkg/redis"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// RateLimit sliding-window limit per client IP and route, kept in redis.
// Without redis, or when redis errors, requests pass.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("odmail:rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", window.Seconds()))
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
