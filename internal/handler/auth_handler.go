package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vuongnm/staffdesk/internal/domain"
)

// AuthHandler issues bearer tokens for the single configured admin
// account. Token issuance is deliberately thin; the capability check in
// the middleware package is the load-bearing half.
type AuthHandler struct {
	secret        string
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
}

func NewAuthHandler(secret string, tokenTTL time.Duration, adminEmail, adminPassword string) *AuthHandler {
	return &AuthHandler{
		secret:        secret,
		tokenTTL:      tokenTTL,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, "Failed to sign in",
			domain.WrapError(domain.KindValidation, "malformed request body", err))
	}

	if h.adminPassword == "" || !h.credentialsMatch(req) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Failed to sign in",
			Message: "invalid email or password",
		})
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Email,
		"iat": now.Unix(),
		"exp": now.Add(h.tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		return respondError(c, "Failed to sign in",
			domain.WrapError(domain.KindInternal, "failed to sign token", err))
	}

	return c.JSON(http.StatusOK, loginResponse{Token: signed})
}

func (h *AuthHandler) credentialsMatch(req loginRequest) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) == 1
	return emailOK && passOK
}
