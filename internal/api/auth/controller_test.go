package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "hunter2"
	testSecret   = "test-secret"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewController(testPassword, testSecret)
	router.POST("/api/admin/login", controller.Login)
	router.GET("/api/admin/tweets", middleware.RequireAdmin(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postLogin(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsBadRequests(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusBadRequest, postLogin(t, router, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(t, router, `not json`).Code)
	assert.Equal(t, http.StatusUnauthorized, postLogin(t, router, `{"password":"wrong"}`).Code)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router := newTestRouter()

	rec := postLogin(t, router, `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest("GET", "/api/admin/tweets", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	authed := httptest.NewRecorder()
	router.ServeHTTP(authed, req)
	assert.Equal(t, http.StatusOK, authed.Code)
}
