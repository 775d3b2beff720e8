package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/SscSPs/b2b_inventory_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoAmI := func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "query": c.Request.URL.RawQuery})
	}
	r.GET("/api/v1/orders", middleware.AuthMiddleware(testSecret), whoAmI)
	r.GET("/api/v1/notifications/stream", middleware.QueryTokenMiddleware(), middleware.AuthMiddleware(testSecret), whoAmI)
	return r
}

func signedToken(t *testing.T, userID string) string {
	token, _, err := utils.GenerateJWT(userID, testSecret, time.Hour, "test")
	require.NoError(t, err)
	return token
}

func serve(r *gin.Engine, url, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	w := serve(newAuthRouter(), "/api/v1/orders", "Bearer "+signedToken(t, "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"user-1"`)
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	r := newAuthRouter()
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"garbage", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, "/api/v1/orders", tt.header).Code)
		})
	}

	expired, _, err := utils.GenerateJWT("user-1", testSecret, -time.Minute, "test")
	require.NoError(t, err)
	w := serve(r, "/api/v1/orders", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_IgnoresQueryTokenOutsideStreams(t *testing.T) {
	w := serve(newAuthRouter(), "/api/v1/orders?access_token="+signedToken(t, "user-1"), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQueryTokenMiddleware_AuthenticatesStreamAndStripsToken(t *testing.T) {
	w := serve(newAuthRouter(), "/api/v1/notifications/stream?access_token="+signedToken(t, "user-2")+"&since=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"user-2"`)
	assert.Contains(t, w.Body.String(), `"query":"since=5"`)
}

func TestQueryTokenMiddleware_HeaderWins(t *testing.T) {
	w := serve(newAuthRouter(), "/api/v1/notifications/stream?access_token=garbage", "Bearer "+signedToken(t, "user-3"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"user-3"`)
}
