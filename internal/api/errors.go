package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/storage"
)

// Stable machine-readable error kinds. The "error" string is for humans; the
// "code" field is the contract clients should branch on.
const (
	CodeInvalidArgument    = "invalid_argument"
	CodeTokenRequired      = "token_required"
	CodeInvalidToken       = "invalid_token"
	CodeAdminRequired      = "admin_required"
	CodeInvalidCredentials = "invalid_credentials"
	CodeAlreadyExists      = "already_exists"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal"
)

// Error is the JSON error body for every failed request.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error satisfies [error].
func (e *Error) Error() string { return e.Message }

func badRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeInvalidArgument, Message: message}
}

func notFound(entity string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: entity + " not found"}
}

func invalidCredentials() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeInvalidCredentials,
		Message: "Invalid username or password",
	}
}

func alreadyExists() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeAlreadyExists,
		Message: "Username or email already exists",
	}
}

// toError normalizes any handler or middleware failure into an [*Error].
// Authentication sentinels map to the 401/403 split of the route contract;
// anything unrecognized is genericized to a 500 with detail retained only in
// server-side diagnostics.
func toError(err error) *Error {
	var apiErr *Error
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, sec.ErrMissingToken):
		return &Error{Status: http.StatusUnauthorized, Code: CodeTokenRequired, Message: "Access token required"}
	case errors.Is(err, sec.ErrInvalidToken):
		return &Error{Status: http.StatusForbidden, Code: CodeInvalidToken, Message: "Invalid token"}
	case errors.Is(err, sec.ErrAdminRequired):
		return &Error{Status: http.StatusForbidden, Code: CodeAdminRequired, Message: "Admin access required"}
	case errors.Is(err, storage.ErrInvalidUsername):
		return badRequest(storage.ErrInvalidUsername.Error())
	case errors.As(err, &echoErr):
		return &Error{
			Status:  echoErr.Code,
			Code:    codeForStatus(echoErr.Code),
			Message: fmt.Sprintf("%v", echoErr.Message),
		}
	default:
		return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidArgument
	case http.StatusUnauthorized:
		return CodeTokenRequired
	case http.StatusForbidden:
		return CodeAdminRequired
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// newErrorHandler builds the echo error handler that renders every failure
// as the {"error", "code"} body.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		apiErr := toError(err)
		if apiErr.Status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(),
				"request failed",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				slog.Any("error", err),
			)
		}
		if writeErr := c.JSON(apiErr.Status, apiErr); writeErr != nil {
			logger.ErrorContext(c.Request().Context(),
				"failed to write error response",
				slog.Any("error", writeErr),
			)
		}
	}
}
