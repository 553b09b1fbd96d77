package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "auth-gateway/pkg/errors"

	"github.com/labstack/echo/v4"
)

// CustomHTTPErrorHandler handles all errors returned by handlers and
// middleware. It maps sentinel errors to HTTP status codes, never exposes
// internal error details, and tags every response with the request ID.
// Token-validation sentinels all map to one generic 401: callers must not
// be able to tell expired from forged.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			message = "Invalid credentials"
		case errors.Is(err, apperrors.ErrUnauthorized),
			errors.Is(err, apperrors.ErrTokenMalformed),
			errors.Is(err, apperrors.ErrTokenSignature),
			errors.Is(err, apperrors.ErrTokenExpired):
			code = http.StatusUnauthorized
			message = "Unauthorized"
		case errors.Is(err, apperrors.ErrForbidden):
			code = http.StatusForbidden
			message = "Forbidden"
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
			code = http.StatusBadRequest
			message = "Bad request"
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && code < 500 {
			message = appErr.Message
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= 500 {
		c.Logger().Errorf("internal error: request_id=%s status=%d err=%v", requestID, code, err)
		message = "Internal server error"
	} else {
		c.Logger().Warnf("client error: request_id=%s status=%d err=%v", requestID, code, err)
	}

	if err := c.JSON(code, map[string]interface{}{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		c.Logger().Error(err)
	}
}
