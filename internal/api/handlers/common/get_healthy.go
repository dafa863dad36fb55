package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/util"
)

const healthyProbeTimeout = 5 * time.Second

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler probes the configured node on top of the readiness check,
// so a 200 here means the server can actually answer tool calls. Only
// availability is probed, responses stay cheap enough for tight scrape
// intervals.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := util.LogFromEchoContext(c)

		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthyProbeTimeout)
		defer cancel()

		var str strings.Builder

		status, err := s.Node.Status(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Node probe failed")
			fmt.Fprintf(&str, "Probe node: %v\n", err)
			str.WriteString("Unhealthy.")

			return c.String(521, str.String())
		}

		fmt.Fprintf(&str, "Probe node: OK (chain %s, block %d)\n", status.ChainID, status.SyncInfo.LatestBlockHeight)

		if status.SyncInfo.Syncing {
			fmt.Fprintf(&str, "Probe sync: node is still syncing\n")
			str.WriteString("Unhealthy.")

			return c.String(521, str.String())
		}

		if s.Signer.CanSign() {
			fmt.Fprintf(&str, "Probe signer: %s\n", s.Signer.ID())
		} else {
			str.WriteString("Probe signer: read-only\n")
		}

		str.WriteString("Healthy.")

		return c.String(http.StatusOK, str.String())
	}
}
