package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexaid/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextModifiedIsStrictlyIncreasing(t *testing.T) {
	prev := Now().Add(time.Hour)
	next := NextModified(prev)
	assert.True(t, next.After(prev))
	assert.Equal(t, time.Millisecond, next.Sub(prev))

	past := Now().Add(-time.Hour)
	assert.True(t, NextModified(past).After(past))
}

func TestDateStampUsesUTC(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	ts := time.Date(2024, 3, 1, 0, 30, 0, 0, lagos)
	assert.Equal(t, "2024-02-29", DateStamp(ts))
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidationError("facts", "required"), http.StatusBadRequest},
		{fmt.Errorf("drafts: %w", ErrServiceUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("draft x: %w", ErrNotFound), http.StatusNotFound},
		{ErrPaymentRequired, http.StatusPaymentRequired},
		{&RemoteError{Service: "gemini", Err: errors.New("boom")}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestRespondErrorHidesUnavailableDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, fmt.Errorf("mongo dial tcp: %w", ErrServiceUnavailable))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"service unavailable"}`, w.Body.String())
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestTokenRoundTrip(t *testing.T) {
	old := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = old })

	tok, err := GenerateToken("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)

	expired, err := GenerateToken("user-1", "ada@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	old := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = ""
	t.Cleanup(func() { config.AppConfig.JWTSecret = old })

	_, err := GenerateToken("u", "e", time.Hour)
	assert.Error(t, err)
}

func TestMoneyConversion(t *testing.T) {
	assert.Equal(t, int64(1900), MajorToMinor(19.0))
	assert.Equal(t, int64(4900), MajorToMinor(48.999999))
	assert.InDelta(t, 19.0, MinorToMajor(1900), 0.0001)
	assert.Equal(t, "NGN 49.00", FormatAmount(4900, "ngn"))
	assert.True(t, SameCurrency("usd", " USD"))
}

func TestSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetSession(c)
	assert.False(t, ok)

	SetSession(c, Session{UserID: "u1", Email: "a@b.c"})
	s, ok := GetSession(c)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}
