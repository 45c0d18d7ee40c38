package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(provider Provider, policy Policy, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{RequireUser(provider, zap.NewNop())}
	if adminOnly {
		handlers = append(handlers, RequireAdmin(provider, policy, zap.NewNop()))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	router := newTestRouter(&MockProvider{}, nil, false)

	rec := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "you must be logged in")
}

func TestRequireUserSetsUserID(t *testing.T) {
	router := newTestRouter(&MockProvider{}, nil, false)

	rec := doRequest(router, "user_123")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_123")
}

func TestRequireAdminAllowsConfiguredAdmin(t *testing.T) {
	provider := &MockProvider{Profiles: map[string]*Profile{
		"user_admin": {ID: "user_admin", Email: "admin@tunedeck.io"},
	}}
	router := newTestRouter(provider, SingleAdminEmail("admin@tunedeck.io"), true)

	rec := doRequest(router, "user_admin")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	provider := &MockProvider{Profiles: map[string]*Profile{
		"user_plain": {ID: "user_plain", Email: "plain@tunedeck.io"},
	}}
	router := newTestRouter(provider, SingleAdminEmail("admin@tunedeck.io"), true)

	rec := doRequest(router, "user_plain")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "you must be an admin")
}

func TestRequireAdminRejectsUnknownUser(t *testing.T) {
	provider := &MockProvider{Profiles: map[string]*Profile{}}
	router := newTestRouter(provider, SingleAdminEmail("admin@tunedeck.io"), true)

	rec := doRequest(router, "user_ghost")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"well formed", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, BearerToken(req))
		})
	}
}
