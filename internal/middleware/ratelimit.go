package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/typeless-cms/core/internal/pkg/jwt"
	"github.com/typeless-cms/core/internal/pkg/response"
)

const (
	rateLimitMax    = 60
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a per-IP fixed-window
// rate limit. It runs ahead of Auth, so the exemption for dashboard
// traffic inspects the bearer token itself: a token that parses and
// verifies skips the limiter, and Auth still vets the session
// downstream. Everything else, public reads included, is limited.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := NormalizeToken(c.GetHeader("Authorization")); tok != "" {
			if _, err := jwt.Parse(tok); err == nil {
				c.Next()
				return
			}
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("tl:rate_limit:%s:%d", ip, time.Now().Unix())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis trouble must not take the API down with it.
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Too many requests")
			return
		}

		c.Next()
	}
}
