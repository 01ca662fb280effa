package schema

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeless-cms/core/internal/pkg/response"
)

func respondWith(t *testing.T, err error) (int, response.Error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	(&Handler{}).respondError(c, err)

	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorValidationMessageSurfaces(t *testing.T) {
	code, body := respondWith(t, invalidf("invalid field name %q", "Bad Name"))
	assert.Equal(t, 400, code)
	assert.Contains(t, body.Message, "Bad Name")
}

func TestRespondErrorSlugConflict(t *testing.T) {
	code, body := respondWith(t, ErrSlugTaken)
	assert.Equal(t, 409, code)
	assert.Equal(t, ErrSlugTaken.Error(), body.Message)
}

func TestRespondErrorNotFound(t *testing.T) {
	code, body := respondWith(t, ErrNotFound)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Content type not found", body.Message)
}

// Database errors must come back as a generic 500; the driver's text
// stays in the logs, never in the response body.
func TestRespondErrorHidesDriverText(t *testing.T) {
	driverErr := &mysqlDriver.MySQLError{
		Number:  1064,
		Message: "You have an error in your SQL syntax",
	}
	code, body := respondWith(t, driverErr)
	assert.Equal(t, 500, code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "SQL syntax")

	code, body = respondWith(t, errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"))
	assert.Equal(t, 500, code)
	assert.Equal(t, "Internal server error", body.Message)
}
