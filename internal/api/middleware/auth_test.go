package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireAdmin(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func signToken(t *testing.T, secret string, admin bool, expiry time.Time) string {
	t.Helper()
	claims := &AdminClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRequireAdmin(t *testing.T) {
	router := newTestRouter()
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", true, future), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, true, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"missing admin claim", "Bearer " + signToken(t, testSecret, false, future), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, testSecret, true, future), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestNewAdminTokenRoundTrip(t *testing.T) {
	token, err := NewAdminToken(testSecret)
	require.NoError(t, err)

	router := newTestRouter()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
