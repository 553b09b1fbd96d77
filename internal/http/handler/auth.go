package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "auth-gateway/pkg/errors"
	"auth-gateway/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Authenticator is the login step: credentials in, bearer token out.
type Authenticator interface {
	Authenticate(ctx context.Context, email, secret string) (string, error)
}

// PasswordResetter runs the forgot-password flow.
type PasswordResetter interface {
	Request(ctx context.Context, email string) error
}

type AuthHandler struct {
	authService  Authenticator
	resetService PasswordResetter
}

func NewAuthHandler(authService Authenticator, resetService PasswordResetter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Login exchanges credentials for a bearer token. The token is returned in
// the Authorization response header as well as the body. Failures are one
// generic 401 regardless of cause.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	token, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
		}
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	c.Response().Header().Set(echo.HeaderAccessControlExposeHeaders, echo.HeaderAuthorization)

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// ForgotPassword triggers the reset flow. The response is identical whether
// or not the email is registered, so the endpoint cannot be used to
// enumerate accounts; the real outcome goes to the log only.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, msgEmailRequired)
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.Logger().Infof("password reset requested for unknown email")
			return respondMessage(c, http.StatusOK, msgResetAccepted)
		}
		c.Logger().Errorf("password reset failed: %v", err)
		return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	return respondMessage(c, http.StatusOK, msgResetAccepted)
}
