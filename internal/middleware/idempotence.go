package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/typeless-cms/core/internal/pkg/response"
)

const (
	idempotenceHeader = "Idempotency-Key"
	idempotenceTTL    = 60 * time.Second
)

// Idempotence returns a middleware that rejects duplicate mutating
// requests within a short window. Clients may send an explicit
// Idempotency-Key header; otherwise the key is derived from the route,
// body and caller identity.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		if shouldSkipIdempotence(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		key, err := resolveIdempotenceKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("tl:idempotence:%s", key)
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, redisKey).Result()
		if err == nil {
			msg := "Duplicate request; an identical request already succeeded within the last 60 seconds"
			if val == "0" {
				msg = "An identical request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}
		if !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if setErr := rdb.Set(ctx, redisKey, "0", idempotenceTTL).Err(); setErr != nil {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

// shouldSkipIdempotence exempts routes where duplicate delivery is the
// provider's concern, not the client's.
func shouldSkipIdempotence(method, path string) bool {
	switch method {
	case http.MethodPost, http.MethodPut:
	default:
		return false
	}

	p := strings.TrimRight(strings.TrimSpace(strings.ToLower(path)), "/")
	switch p {
	case "/stripe/webhook",
		"/auth/oauth/callback",
		"/auth/oauth/sync",
		"/auth/refresh":
		return true
	}
	return false
}

func resolveIdempotenceKey(c *gin.Context) (string, error) {
	if key := strings.TrimSpace(c.GetHeader(idempotenceHeader)); key != "" {
		return key, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	h.Write([]byte(c.GetHeader("Authorization")))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}
