package httperrors

import (
	"net/http"

	"github/chapool/go-near-tools/internal/types"
)

var (
	ErrNotFoundTool      = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeTOOLNOTFOUND, "No tool is registered under the given name.")
	ErrForbiddenNoSigner = NewHTTPError(http.StatusForbidden, types.PublicHTTPErrorTypeNOSIGNER, "This tool submits transactions and requires a configured signer account.")
)
