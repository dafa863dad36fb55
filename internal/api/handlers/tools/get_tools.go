package tools

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

func GetToolsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tools.GET("", getToolsHandler(s))
}

// getToolsHandler lists every registered tool with its argument schema, in
// registration order.
func getToolsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		defs := s.Tools.Definitions()

		infos := make([]*types.PublicToolInfo, 0, len(defs))
		for _, def := range defs {
			infos = append(infos, &types.PublicToolInfo{
				Name:        swag.String(def.Name),
				Description: swag.String(def.Description),
				InputSchema: def.InputSchema,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PublicToolListResponse{
			Tools: infos,
		})
	}
}
