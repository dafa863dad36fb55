package tools

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/api/httperrors"
	"github/chapool/go-near-tools/internal/near/account"
	"github/chapool/go-near-tools/internal/tools"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

func PostToolRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Tools.POST("/:name", postToolHandler(s))
}

// postToolHandler invokes a tool by name. Tool-level failures are regular
// 200 responses with isError set, the error path here is reserved for
// protocol-level conditions: unknown tool and missing signer.
func postToolHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.ToolInvocationPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		name := c.Param("name")

		result, err := s.Tools.Invoke(ctx, name, body.Arguments)
		if err != nil {
			switch {
			case errors.Is(err, tools.ErrUnknownTool):
				log.Debug().Str("tool", name).Msg("Unknown tool requested")
				return httperrors.ErrNotFoundTool
			case errors.Is(err, account.ErrNoSigner):
				log.Debug().Str("tool", name).Msg("Rejecting mutating tool, no signer configured")
				return httperrors.ErrForbiddenNoSigner
			default:
				log.Debug().Err(err).Str("tool", name).Msg("Failed to invoke tool")
				return err
			}
		}

		return util.ValidateAndReturn(c, http.StatusOK, result)
	}
}
