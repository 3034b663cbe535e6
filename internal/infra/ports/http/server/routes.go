package server

import (
	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSync/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	iceHandler *handlers.IceHandler,
	wsHandler *handlers.WebSocketHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	// без секрета личность берётся из join
	var wsMiddleware []echo.MiddlewareFunc
	if cfg.JWTSecret != "" {
		wsMiddleware = append(wsMiddleware, middleware.JWTAuthMiddleware(cfg.JWTSecret))
	}

	e.GET("/ws", wsHandler.Handle, wsMiddleware...)

	api := e.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ice", iceHandler.IceServers)
		}
	}

	return e
}
