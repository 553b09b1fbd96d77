package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "auth-gateway/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	token string
	err   error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _, _ string) (string, error) {
	return s.token, s.err
}

type stubResetter struct {
	err    error
	emails []string
}

func (s *stubResetter) Request(_ context.Context, email string) error {
	s.emails = append(s.emails, email)
	return s.err
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthenticator{token: "signed-token"}, &stubResetter{})

	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"correct"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed-token", rec.Header().Get(echo.HeaderAuthorization))

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthenticator{err: apperrors.InvalidCredentials()}, &stubResetter{})

	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAuthorization))
	assert.Contains(t, rec.Body.String(), msgInvalidCredentials)
	// The generic message must not hint at which part was wrong.
	assert.NotContains(t, rec.Body.String(), "not found")
}

func TestAuthHandler_Login_RequiresJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthenticator{token: "x"}, &stubResetter{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("email=a@b.com"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestAuthHandler_Login_RejectsUnknownFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthenticator{token: "x"}, &stubResetter{})

	c, rec := postJSON(t, "/auth/login", `{"email":"a@b.com","password":"p","admin":true}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_ForgotPassword_UniformResponse(t *testing.T) {
	known := &stubResetter{}
	unknown := &stubResetter{err: apperrors.NotFound("account not found for email")}

	c, recKnown := postJSON(t, "/auth/forgot", `{"email":"a@b.com"}`)
	require.NoError(t, NewAuthHandler(&stubAuthenticator{}, known).ForgotPassword(c))

	c, recUnknown := postJSON(t, "/auth/forgot", `{"email":"ghost@x.com"}`)
	require.NoError(t, NewAuthHandler(&stubAuthenticator{}, unknown).ForgotPassword(c))

	// Identical outward response whether or not the account exists.
	assert.Equal(t, http.StatusOK, recKnown.Code)
	assert.Equal(t, http.StatusOK, recUnknown.Code)
	assert.Equal(t, recKnown.Body.String(), recUnknown.Body.String())
}

func TestAuthHandler_ForgotPassword_InvalidEmail(t *testing.T) {
	reset := &stubResetter{}
	h := NewAuthHandler(&stubAuthenticator{}, reset)

	c, rec := postJSON(t, "/auth/forgot", `{"email":"not-an-email"}`)
	require.NoError(t, h.ForgotPassword(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, reset.emails)
}

func TestAuthHandler_ForgotPassword_InternalError(t *testing.T) {
	reset := &stubResetter{err: apperrors.InternalServer("failed to store new password hash", nil)}
	h := NewAuthHandler(&stubAuthenticator{}, reset)

	c, rec := postJSON(t, "/auth/forgot", `{"email":"a@b.com"}`)
	require.NoError(t, h.ForgotPassword(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
}
