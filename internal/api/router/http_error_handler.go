package router

import (
	"errors"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/go-near-tools/internal/api/httperrors"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

var DefaultHTTPErrorHandlerConfig = HTTPErrorHandlerConfig{
	HideInternalServerErrorDetails: true,
}

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandler returns an error handler with the default config applied.
func HTTPErrorHandler() echo.HTTPErrorHandler {
	return HTTPErrorHandlerWithConfig(DefaultHTTPErrorHandlerConfig)
}

// HTTPErrorHandlerWithConfig renders every error bubbling out of a handler as
// a types.PublicHTTPError JSON payload, converting echo's own errors and
// unknown ones on the fly.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var code int
		var he error

		var httpError *httperrors.HTTPError
		var httpValidationError *httperrors.HTTPValidationError
		var echoHTTPError *echo.HTTPError

		switch {
		case errors.As(err, &httpValidationError):
			code = int(*httpValidationError.Code)
			he = httpValidationError
		case errors.As(err, &httpError):
			code = int(*httpError.Code)

			if code == http.StatusInternalServerError && config.HideInternalServerErrorDetails && httpError.Internal != nil {
				util.LogFromEchoContext(c).Error().Err(httpError.Internal).Msg("Internal server error")
				httpError.Internal = nil
			}

			he = httpError
		case errors.As(err, &echoHTTPError):
			code = echoHTTPError.Code

			msg, ok := echoHTTPError.Message.(string)
			if !ok {
				msg = http.StatusText(echoHTTPError.Code)
			}

			he = &httperrors.HTTPError{
				PublicHTTPError: types.PublicHTTPError{
					Code:  swag.Int64(int64(echoHTTPError.Code)),
					Title: swag.String(msg),
					Type:  swag.String(httperrors.HTTPErrorTypeGeneric),
				},
			}
		default:
			code = http.StatusInternalServerError

			title := err.Error()
			if config.HideInternalServerErrorDetails {
				util.LogFromEchoContext(c).Error().Err(err).Msg("Internal server error")
				title = http.StatusText(http.StatusInternalServerError)
			}

			he = &httperrors.HTTPError{
				PublicHTTPError: types.PublicHTTPError{
					Code:  swag.Int64(int64(http.StatusInternalServerError)),
					Title: swag.String(title),
					Type:  swag.String(httperrors.HTTPErrorTypeGeneric),
				},
			}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, he)
			}

			if err != nil {
				util.LogFromEchoContext(c).Error().Err(err).Msg("Failed to handle HTTP error")
			}
		}
	}
}
