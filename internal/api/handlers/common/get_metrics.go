package common

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/metrics", getMetricsHandler(s))
}

// getMetricsHandler exposes the shared prometheus registry: tool and RPC
// counters, HTTP metrics from the echoprometheus middleware, and the Go
// runtime collectors.
func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	if s.Metrics == nil {
		return func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "metrics are not initialized")
		}
	}

	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	})
}
