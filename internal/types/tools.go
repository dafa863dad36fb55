package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// ToolInvocationPayload is the request body for invoking a single tool.
type ToolInvocationPayload struct {
	// Tool arguments as a free-form JSON object. Kept raw so numeric
	// precision survives until the tool decodes it.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Validate validates this tool invocation payload
func (m *ToolInvocationPayload) Validate(_ strfmt.Registry) error {
	if len(m.Arguments) == 0 {
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(m.Arguments, &probe); err != nil {
		return errors.InvalidType("arguments", "body", "object", string(m.Arguments))
	}
	return nil
}

// PublicToolInfo describes a single registered tool.
type PublicToolInfo struct {
	// Name of the tool
	// Example: near_transfer
	// Required: true
	Name *string `json:"name"`

	// Human-readable description of what the tool does
	// Required: true
	Description *string `json:"description"`

	// JSON schema describing the accepted arguments
	InputSchema interface{} `json:"inputSchema,omitempty"`
}

// Validate validates this public tool info
func (m *PublicToolInfo) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("description", "body", m.Description); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicToolListResponse lists all registered tools.
type PublicToolListResponse struct {
	// Required: true
	Tools []*PublicToolInfo `json:"tools"`
}

// Validate validates this public tool list response
func (m *PublicToolListResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("tools", "body", m.Tools); err != nil {
		res = append(res, err)
	}

	for i := range m.Tools {
		if m.Tools[i] == nil {
			continue
		}

		if err := m.Tools[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicToolResultContent is a single content block of a tool result.
type PublicToolResultContent struct {
	// Content type discriminator
	// Example: text
	// Required: true
	// Enum: [text]
	Type *string `json:"type"`

	// Text content
	// Required: true
	Text *string `json:"text"`
}

// Validate validates this public tool result content
func (m *PublicToolResultContent) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if m.Type != nil {
		if err := validate.Enum("type", "body", *m.Type, []interface{}{"text"}); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.Required("text", "body", m.Text); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicToolResult is the outcome of a tool invocation. Tool-level failures
// are carried inside the result with IsError set, they are not transport
// errors.
type PublicToolResult struct {
	// Required: true
	Content []*PublicToolResultContent `json:"content"`

	IsError bool `json:"isError,omitempty"`
}

// Validate validates this public tool result
func (m *PublicToolResult) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("content", "body", m.Content); err != nil {
		res = append(res, err)
	}

	for i := range m.Content {
		if m.Content[i] == nil {
			continue
		}

		if err := m.Content[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
