package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func performLogged(t *testing.T, handler gin.HandlerFunc, target string) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ping", handler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return logs
}

func TestLoggerAttributesAuthedTraffic(t *testing.T) {
	logs := performLogged(t, func(c *gin.Context) {
		c.Set(ContextKeyUserID, "user-1")
		c.Status(http.StatusOK)
	}, "/ping?limit=5")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "/ping", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "limit=5", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestLoggerLevelTracksStatus(t *testing.T) {
	logs := performLogged(t, func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	}, "/ping")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)

	logs = performLogged(t, func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	}, "/ping")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)

	// Anonymous request: no user_id field at all.
	_, ok := entry.ContextMap()["user_id"]
	assert.False(t, ok)
}
