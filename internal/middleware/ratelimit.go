package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/rs/zerolog"
)

// RateLimit enforces a per-route, per-client quota over a sliding
// window backed by redis. When redis is unreachable the limiter fails
// open: quota enforcement is best-effort, serving requests is not.
func RateLimit(limiter *redis_rate.Limiter, route string, rate int, period time.Duration, log zerolog.Logger) gin.HandlerFunc {
	limit := redis_rate.Limit{
		Rate:   rate,
		Burst:  rate,
		Period: period,
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", route, c.ClientIP())

		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if res.Allowed == 0 {
			c.Header("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too Many Requests"})
			return
		}

		c.Next()
	}
}
