package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicVersionInfoResponse reports the build arguments baked into the binary.
type PublicVersionInfoResponse struct {
	// Module name
	// Required: true
	Module *string `json:"module"`

	// VCS commit the binary was built from
	// Required: true
	Commit *string `json:"commit"`

	// Build timestamp
	// Required: true
	BuildDate *string `json:"buildDate"`
}

// Validate validates this public version info response
func (m *PublicVersionInfoResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("module", "body", m.Module); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("commit", "body", m.Commit); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("buildDate", "body", m.BuildDate); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
