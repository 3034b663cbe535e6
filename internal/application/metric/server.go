package metric

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter - реестр, который умеет сказать свой размер
type Counter interface {
	Len() int
}

type healthResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
	Rooms       int    `json:"rooms"`
}

// NewServer поднимает /metrics и /health. В /health отдаются живые счётчики соединений и комнат.
func NewServer(connections, rooms Counter) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{
			Status:      "ok",
			Connections: connections.Len(),
			Rooms:       rooms.Len(),
		})
	})

	return e
}
