package util

import (
	"errors"
	"net/http"

	openapiErrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	accept "github.com/timewasted/go-accept-headers"
	"github/chapool/go-near-tools/internal/api/httperrors"
	"github/chapool/go-near-tools/internal/types"
)

// BindAndValidateBody binds the request body to the given payload and
// validates it against its schema, converting validation failures into a
// *httperrors.HTTPValidationError.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder := c.Echo().Binder.(*echo.DefaultBinder) //nolint:forcetypeassert

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the response payload before writing it as JSON
// with the given status code, guarding against handing out responses
// violating our own schema.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *openapiErrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromEchoContext(c).Debug().AnErr("validationErr", compositeError).Msg("Payload did not pass validation")

			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				httperrors.HTTPErrorTypeGeneric,
				http.StatusText(http.StatusBadRequest),
				formatValidationErrors(compositeError),
			)
		}

		var validationError *openapiErrors.Validation
		if errors.As(err, &validationError) {
			LogFromEchoContext(c).Debug().AnErr("validationErr", validationError).Msg("Payload did not pass validation")

			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				httperrors.HTTPErrorTypeGeneric,
				http.StatusText(http.StatusBadRequest),
				[]*types.HTTPValidationErrorDetail{
					{
						Key:   swag.String(validationError.Name),
						In:    swag.String(validationError.In),
						Error: swag.String(validationError.Error()),
					},
				},
			)
		}

		return err
	}

	return nil
}

func formatValidationErrors(compositeError *openapiErrors.CompositeError) []*types.HTTPValidationErrorDetail {
	valErrs := make([]*types.HTTPValidationErrorDetail, 0, len(compositeError.Errors))

	for _, err := range compositeError.Errors {
		var validationError *openapiErrors.Validation
		if errors.As(err, &validationError) {
			valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validationError.Name),
				In:    swag.String(validationError.In),
				Error: swag.String(validationError.Error()),
			})

			continue
		}

		valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
			Key:   swag.String("unknown"),
			In:    swag.String("body"),
			Error: swag.String(err.Error()),
		})
	}

	return valErrs
}

// NegotiateContentType returns the offered content type best matching the
// request's Accept header, the first offer when the header is absent or
// nothing matches.
func NegotiateContentType(c echo.Context, offers ...string) string {
	header := c.Request().Header.Get(echo.HeaderAccept)
	if len(header) == 0 {
		return offers[0]
	}

	negotiated, err := accept.Negotiate(header, offers...)
	if err != nil || len(negotiated) == 0 {
		return offers[0]
	}

	return negotiated
}
