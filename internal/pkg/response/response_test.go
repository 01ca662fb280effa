package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(write func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	write(c)
	c.Writer.WriteHeaderNow()
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) Error {
	var body Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		write   func(c *gin.Context)
		status  int
		message string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "Field 'Title' is required") }, 400, "Field 'Title' is required"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "Invalid token") }, 401, "Invalid token"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "You do not have access to this workspace") }, 403, "You do not have access to this workspace"},
		{"not found", func(c *gin.Context) { NotFound(c, "Workspace not found") }, 404, "Workspace not found"},
		{"conflict", func(c *gin.Context) { Conflict(c, "slug already exists") }, 409, "slug already exists"},
		{"too many requests", func(c *gin.Context) { TooManyRequests(c, "Too many requests") }, 429, "Too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(tt.write)
			assert.Equal(t, tt.status, w.Code)

			body := decodeError(t, w)
			assert.Equal(t, tt.status, body.StatusCode)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	w := perform(func(c *gin.Context) { InternalError(c) })
	assert.Equal(t, 500, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, 500, body.StatusCode)
	assert.NotEmpty(t, body.Message)
}

func TestPagedEnvelope(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Paged(c, []string{"a", "b"}, Pagination{Page: 1, Limit: 10, Total: 2, Pages: 1})
	})
	assert.Equal(t, 200, w.Code)

	var body struct {
		Data       []string   `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, int64(2), body.Pagination.Total)
}

func TestNoContent(t *testing.T) {
	w := perform(NoContent)
	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
