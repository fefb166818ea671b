package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuchoff/niche-todo-backend/internal/config"
	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"github.com/mbuchoff/niche-todo-backend/internal/services"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenService, err := services.NewTokenService(&config.Config{
		TokenKeyID:            "test-key",
		RefreshTokenSalt:      "test-salt",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLDays:   30,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", RequireAuth(tokenService), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r, tokenService
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r, tokenService := newAuthTestRouter(t)

	issued, err := tokenService.IssueTokens(&models.User{ID: "user-1", Email: "u@example.com"}, "device-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
