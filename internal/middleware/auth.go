package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKeySubject is where the authenticated subject lands on the
// echo context after the gate passes.
const ContextKeySubject = "auth.subject"

// RequireAuth gates a route group behind a bearer JWT. A missing
// credential is 401; a present but invalid one is 403. Nothing behind
// the gate runs until the token checks out.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			if sub, err := token.Claims.GetSubject(); err == nil {
				c.Set(ContextKeySubject, sub)
			}
			return next(c)
		}
	}
}
