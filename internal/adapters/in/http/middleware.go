package http

import (
	"log/slog"
	"strings"

	"parcelmybox/internal/auth"
	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const identityKey = "identity"

// TokenParser validates bearer access tokens.
type TokenParser interface {
	ParseAccess(token string) (auth.Identity, error)
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// access token and stores the bearer's identity on the context.
func Authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				return errUnauthorized
			}

			identity, err := tokens.ParseAccess(strings.TrimSpace(token))
			if err != nil {
				return errUnauthorized
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) (auth.Identity, error) {
	identity, ok := c.Get(identityKey).(auth.Identity)
	if !ok {
		return auth.Identity{}, errUnauthorized
	}
	return identity, nil
}

// actorFrom is the actor every protected command and query runs as.
func actorFrom(c echo.Context) (kernel.Actor, error) {
	identity, err := identityFrom(c)
	if err != nil {
		return kernel.Actor{}, err
	}
	return identity.Actor()
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
