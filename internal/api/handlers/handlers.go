package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/api/handlers/common"
	"github/chapool/go-near-tools/internal/api/handlers/tools"
)

// AttachAllRoutes attaches all registered routes to the server's router.
// Keep the list sorted by handler package and path.
func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		tools.GetToolsRoute(s),
		tools.PostToolRoute(s),
	}
}
