package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/cache"
)

// RateLimiterMiddleware caps requests per fixed window. Behind
// AuthMiddleware the budget belongs to the planner user; before it
// (login, register) it belongs to the client IP. Redis errors let the
// request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := cache.RateLimitKey(rateSubject(c))

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pttl := pipe.PTTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("[RATE] limiter skipped for %s: %v", key, err)
			c.Next()
			return
		}

		count, ttl := incr.Val(), pttl.Val()
		if ttl < 0 {
			// First hit of the window, or a key that lost its expiry.
			if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
				log.Printf("[RATE] expire failed for %s: %v", key, err)
				rdb.Del(ctx, key)
				c.Next()
				return
			}
			ttl = window
		}

		remaining := int64(limit) - count
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, remaining), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if remaining < 0 {
			retry := int(ttl.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": retry,
			})
			return
		}

		c.Next()
	}
}

func rateSubject(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok && userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}
