package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parcelmybox/internal/auth"
	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided or are invalid")

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrServiceNotOffered):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error, status int) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
		return http.StatusText(he.Code)
	}
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusUnauthorized:
		return "invalid credentials"
	default:
		return err.Error()
	}
}

// NewErrorHandler renders handler errors as Error bodies. Unexpected
// failures are logged and reported without details.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, Error{Code: status, Message: messageOf(err, status)})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
		}
	}
}
