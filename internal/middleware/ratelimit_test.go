package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeless-cms/core/internal/pkg/jwt"
)

// countingHook records how many commands the limiter sends, letting the
// tests tell the exemption path apart from the fail-open path.
type countingHook struct {
	calls *int32
}

func (h countingHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h countingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		atomic.AddInt32(h.calls, 1)
		return next(ctx, cmd)
	}
}

func (h countingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func rateLimitedRequest(t *testing.T, authorization string) (int, int32) {
	t.Helper()
	var calls int32
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rdb.AddHook(countingHook{calls: &calls})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rdb))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code, atomic.LoadInt32(&calls)
}

// A verifiable bearer token must skip the limiter entirely: the
// middleware runs ahead of Auth, so the exemption has to come from the
// token itself, not from context state Auth has not set yet.
func TestRateLimitExemptsValidBearerToken(t *testing.T) {
	jwt.SetSecret("rate-limit-test-secret")
	token, err := jwt.Sign("user-1", "session-1", time.Minute)
	require.NoError(t, err)

	status, calls := rateLimitedRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, calls)
}

func TestRateLimitCountsGarbageTokens(t *testing.T) {
	status, calls := rateLimitedRequest(t, "Bearer not-a-token")
	// Redis is unreachable here, so the request fails open, but the
	// limiter was consulted.
	assert.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, calls, int32(1))
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	status, calls := rateLimitedRequest(t, "")
	assert.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, calls, int32(1))
}
