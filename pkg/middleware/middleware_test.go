package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nightlife-portal/pkg/auth"
	tracecontext "nightlife-portal/pkg/context"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubFinder struct {
	principals map[string]*auth.Principal
	err        error
}

func (f *stubFinder) FindPrincipal(_ context.Context, id string) (*auth.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.principals[id]
	if !ok {
		return nil, auth.ErrPrincipalNotFound
	}
	return p, nil
}

func newAuthRouter(t *testing.T, finder auth.PrincipalFinder) (*gin.Engine, *auth.JWTConfig) {
	t.Helper()
	cfg := &auth.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}
	am := NewAuthMiddleware(kratoslog.DefaultLogger, cfg, finder)

	r := gin.New()
	r.GET("/me", am.Protect(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":  CurrentPrincipal(c).ID,
			"ctx": tracecontext.GetAccountID(c.Request.Context()),
		})
	})
	r.POST("/admin", append(am.Admin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	r.POST("/admin-only", am.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, cfg
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGate(t *testing.T) {
	finder := &stubFinder{principals: map[string]*auth.Principal{
		"admin-1": {ID: "admin-1", Role: auth.RoleAdmin},
		"user-1":  {ID: "user-1", Role: auth.RoleUser},
	}}
	r, cfg := newAuthRouter(t, finder)

	token := func(id string) string {
		tok, err := auth.GenerateToken(cfg, id, "", time.Now())
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", http.MethodGet, "/me", "", http.StatusUnauthorized, MsgNoToken},
		{"bad token", http.MethodGet, "/me", "garbage", http.StatusUnauthorized, MsgTokenFailed},
		{"deleted account", http.MethodGet, "/me", token("gone"), http.StatusUnauthorized, MsgAccountNotFound},
		{"user on admin route", http.MethodPost, "/admin", token("user-1"), http.StatusForbidden, MsgNotAdmin},
		{"admin only without protect", http.MethodPost, "/admin-only", token("admin-1"), http.StatusUnauthorized, MsgNoToken},
		{"admin", http.MethodPost, "/admin", token("admin-1"), http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				assert.JSONEq(t, `{"message":"`+tt.message+`"}`, w.Body.String())
			}
		})
	}

	w := doRequest(r, http.MethodGet, "/me", token("user-1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"user-1","ctx":"user-1"}`, w.Body.String())
}

func TestAuthGateLookupFailure(t *testing.T) {
	r, cfg := newAuthRouter(t, &stubFinder{err: errors.New("server selection timeout")})
	tok, err := auth.GenerateToken(cfg, "admin-1", auth.RoleAdmin, time.Now())
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())
}

type memCounter struct {
	counts map[string]int64
	err    error
}

func (m *memCounter) IncrWithExpire(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func TestRateLimit(t *testing.T) {
	counter := &memCounter{counts: map[string]int64{}}
	rl := NewRateLimiter(counter, 2, time.Minute, kratoslog.DefaultLogger)
	rl.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.POST("/comments", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/comments", "").Code)
	assert.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/comments", "").Code)

	w := doRequest(r, http.MethodPost, "/comments", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())

	rl.now = func() time.Time { return time.Date(2025, 3, 1, 12, 1, 0, 0, time.UTC) }
	assert.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/comments", "").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	rl := NewRateLimiter(&memCounter{err: errors.New("redis down")}, 1, time.Minute, kratoslog.DefaultLogger)

	r := gin.New()
	r.POST("/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/login", "").Code)
	}
}

func TestCORSAndNoStore(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://portal.example"}))
	r.PUT("/x", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://portal.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://portal.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPut, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}
