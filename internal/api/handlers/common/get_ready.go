package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler returns 200 when the server is fully initialized and can
// accept requests, 521 otherwise. It never probes external dependencies, use
// /-/healthy for that.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
