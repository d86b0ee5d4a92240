package http

import (
	"log/slog"
	"net/http"

	"parcelmybox/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, its OpenAPI document
// and the Swagger UI.
func NewRouter(server *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))

	RegisterHandlers(e, server, Authenticate(server.tokens))

	e.GET("/openapi.json", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func serveOpenAPI(ctx echo.Context) error {
	body, err := docs.JSON()
	if err != nil {
		return err
	}
	return ctx.JSONBlob(http.StatusOK, body)
}
