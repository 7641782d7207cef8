package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter is the shared sliding-window counter behind rate limiting,
// satisfied by the Redis client.
type Limiter interface {
	Allow(key string, max int, window time.Duration) (bool, time.Duration, error)
}

// RateLimit bounds how often one caller may hit an abuse-prone action. The
// counter is keyed by user id when authenticated, client IP otherwise.
func RateLimit(limiter Limiter, action string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		if actor, ok := GetActor(c); ok {
			key = fmt.Sprintf("%s:user:%d", action, actor.ID)
		} else {
			key = fmt.Sprintf("%s:ip:%s", action, c.ClientIP())
		}

		allowed, retryAfter, err := limiter.Allow(key, max, window)
		if err != nil {
			// Rate limiting is protective, not load-bearing; let the
			// request through if Redis is unreachable.
			c.Next()
			return
		}
		if !allowed {
			seconds := int(retryAfter.Seconds()) + 1
			c.Header("Retry-After", fmt.Sprintf("%d", seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     fmt.Sprintf("Too many requests. Maximum %d requests per %s.", max, window),
				"retry_after": seconds,
			})
			return
		}
		c.Next()
	}
}
