package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	user.AuthService
	sessions map[string]utils.Session
	err      error
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (utils.Session, error) {
	if s.err != nil {
		return utils.Session{}, s.err
	}
	sess, ok := s.sessions[token]
	if !ok {
		return utils.Session{}, utils.ErrUnauthorized
	}
	return sess, nil
}

func init() { gin.SetMode(gin.TestMode) }

func authRouter(auth user.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(auth), func(c *gin.Context) {
		s, _ := utils.GetSession(c)
		c.String(http.StatusOK, s.UserID)
	})
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := authRouter(&stubAuth{sessions: map[string]utils.Session{"good": {UserID: "u1"}}})

	w := get(r, "/me", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", map[string]string{"Authorization": "Bearer bad"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", map[string]string{"Authorization": "Basic x"}).Code)
}

func TestJWTAuthMiddlewareBackendDown(t *testing.T) {
	r := authRouter(&stubAuth{err: utils.ErrServiceUnavailable})
	w := get(r, "/me", map[string]string{"Authorization": "Bearer any"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	h := map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}
	assert.Equal(t, http.StatusNoContent, get(r, "/", h).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/", h).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/", h).Code)

	assert.Equal(t, http.StatusNoContent, get(r, "/", map[string]string{"X-Forwarded-For": "10.0.0.2"}).Code)
}

func TestSweepForgetsIdleClients(t *testing.T) {
	s := newRateLimiterStore(10)
	now := time.Now()
	s.getLimiter("a", now.Add(-time.Hour))
	s.getLimiter("b", now)
	s.sweep(now, 10*time.Minute)
	assert.NotContains(t, s.visitors, "a")
	assert.Contains(t, s.visitors, "b")
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(c))
}
