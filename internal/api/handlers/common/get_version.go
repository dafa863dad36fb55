package common

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

func GetVersionRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/version", getVersionHandler(s))
}

// getVersionHandler reports the build arguments baked in via ldflags, as
// plain text by default or JSON when the Accept header asks for it.
func getVersionHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		negotiated := util.NegotiateContentType(c, echo.MIMETextPlain, echo.MIMEApplicationJSON)

		if negotiated == echo.MIMEApplicationJSON {
			return util.ValidateAndReturn(c, http.StatusOK, &types.PublicVersionInfoResponse{
				Module:    swag.String(config.ModuleName),
				Commit:    swag.String(config.Commit),
				BuildDate: swag.String(config.BuildDate),
			})
		}

		return c.String(http.StatusOK, config.GetFormattedBuildArgs())
	}
}
