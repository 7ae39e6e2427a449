package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "fleetops/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterHealthAndNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{UploadDir: t.TempDir()})

	w := serve(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterValidatesBeforeTouchingStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{UploadDir: t.TempDir()})

	w := serve(r, http.MethodPost, "/api/drivers", `{"first_name": "", "last_name": "Paredes"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "first_name")

	w = serve(r, http.MethodGet, "/api/vehicles/0/documents", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterRateLimitsEntityRoutesOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{UploadDir: t.TempDir(), RateLimitPerMinute: 1})

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/trips/abc", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/api/trips/abc", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/health", "").Code)
}

func TestRouterRequiresBearerWhenSecretSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(intconfig.Env{UploadDir: t.TempDir(), JWTSecret: "fleet-secret"})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/drivers/1", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/health", "").Code)
}
