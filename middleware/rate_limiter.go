// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
)

// RateLimiter keeps one token bucket per client IP in process memory. The
// cache keyspace is reserved for subscriber markers, so limiter state stays out of Redis.
func RateLimiter(perSecond float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), burst)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		key := c.ClientIP()

		c.Header("X-RateLimit-Limit", strconv.FormatFloat(perSecond, 'f', -1, 64))
		c.Header("X-RateLimit-Burst", strconv.Itoa(burst))

		if !limiterFor(key).Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", key),
				zap.Float64("perSecond", perSecond),
				zap.Int("burst", burst))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
