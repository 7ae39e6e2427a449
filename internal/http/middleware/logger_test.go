package middleware

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"fleetops/internal/utils"
)

func TestLoggerRecordsTokenSubject(t *testing.T) {
	var buf bytes.Buffer
	out := utils.Log.Out
	utils.Log.SetOutput(&buf)
	t.Cleanup(func() { utils.Log.SetOutput(out) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), BearerAuth("s3cret"))
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, GetSubject(c)) })

	tok := signed(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{
		"sub": "dispatcher-4",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w := call(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"subject":"dispatcher-4"`)

	buf.Reset()
	w = call(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, buf.String(), `"subject"`)
	assert.Contains(t, buf.String(), `"status":401`)
}
