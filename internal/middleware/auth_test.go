package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.com",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func gatedRequest(authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	rec := gatedRequest("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_NotBearer(t *testing.T) {
	rec := gatedRequest("Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	rec := gatedRequest("Bearer not.a.token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))
	rec := gatedRequest("Bearer " + token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))
	rec := gatedRequest("Bearer " + token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	rec := gatedRequest("Bearer " + token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequireAuth_SetsSubject(t *testing.T) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		sub, _ := c.Get(ContextKeySubject).(string)
		return c.String(http.StatusOK, sub)
	}, RequireAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, testSecret, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "admin@example.com", rec.Body.String())
}
