package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenSubject string
	m := newAuthMiddleware(testSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = ctxAdminSubject(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenSubject
}

func TestAuthenticateMissingToken(t *testing.T) {
	handler, _ := protectedProbe(t)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	handler, _ := protectedProbe(t)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	handler, _ := protectedProbe(t)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "admin"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	handler, subject := protectedProbe(t)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "admin"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", *subject)
}

func TestRateLimitMiddleware(t *testing.T) {
	// Burst of 2, effectively no refill within the test
	limiter := rate.NewLimiter(rate.Every(time.Hour), 2)
	handler := rateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestLogInternalServerErrorsRecoversPanics(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSCheckMiddleware(t *testing.T) {
	handler := CORSCheckMiddleware([]string{"https://allowed.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Disallowed origin preflight is rejected with a body
	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Allowed origin passes through
	req = httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "https://allowed.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Same-origin requests carry no Origin header
	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
