package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siriassis-creator/Sit-logistics-app/internal/api/middleware"
	"github.com/siriassis-creator/Sit-logistics-app/internal/auth"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

func testIssuer() *auth.TokenIssuer {
	return &auth.TokenIssuer{Secret: []byte("test-secret"), Expiration: time.Hour}
}

func TestAnonymousLogin(t *testing.T) {
	mem := store.NewMemory()
	issuer := testIssuer()
	h := &AuthHandler{Issuer: issuer, Store: mem}

	router := gin.New()
	router.POST("/auth/anonymous", h.AnonymousLogin)

	w := performJSON(t, router, http.MethodPost, "/auth/anonymous", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	decodeBody(t, w, &resp)
	assert.True(t, strings.HasPrefix(resp.UserID, "staff-"))

	claims, err := issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.True(t, claims.Anonymous)

	var users []models.User
	require.NoError(t, mem.List(context.Background(), "users", &users))
	require.Len(t, users, 1)
	assert.Equal(t, resp.UserID, users[0].UserID)
}

func newAuthedRequest(t *testing.T, header string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", header)
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMiddleware(t *testing.T) {
	issuer := testIssuer()

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("user_id")})
	})

	// no header
	w := performJSON(t, router, http.MethodGet, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	req := newAuthedRequest(t, "Bearer not-a-token")
	w = serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token passes and exposes the user id
	token, err := issuer.Generate("staff-abc12345", true)
	require.NoError(t, err)
	req = newAuthedRequest(t, "Bearer "+token)
	w = serve(router, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff-abc12345")

	// expired token is rejected
	expired := &auth.TokenIssuer{Secret: []byte("test-secret"), Expiration: -time.Hour}
	token, err = expired.Generate("staff-abc12345", true)
	require.NoError(t, err)
	req = newAuthedRequest(t, "Bearer "+token)
	w = serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
