package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/azurestore/backend/internal/infrastructure/auth"
	"github.com/azurestore/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "azurestore-test",
		MaxRefreshCount:        3,
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role string) (string, *auth.Claims) {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ava@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

func authTestEngine(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected",
		RequireAuth(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist}),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTRole(c)})
		})
	engine.GET("/admin",
		RequireAuth(JWTMiddlewareConfig{JWTService: jwtService}),
		RequireAdmin(),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	return engine
}

func serve(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService := newTestJWTService()
	engine := authTestEngine(jwtService, nil)

	t.Run("valid token", func(t *testing.T) {
		token, _ := issueToken(t, jwtService, "shopper")
		w := serve(engine, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(engine, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := serve(engine, "/protected", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "ava@example.com",
			Role:   "shopper",
		})
		require.NoError(t, err)
		w := serve(engine, "/protected", pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAuthBlacklist(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	engine := authTestEngine(jwtService, blacklist)

	token, claims := issueToken(t, jwtService, "shopper")
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

	w := serve(engine, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	engine := authTestEngine(jwtService, nil)

	t.Run("shopper is forbidden", func(t *testing.T) {
		token, _ := issueToken(t, jwtService, "shopper")
		w := serve(engine, "/admin", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, _ := issueToken(t, jwtService, "admin")
		w := serve(engine, "/admin", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
