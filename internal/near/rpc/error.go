package rpc

import "fmt"

// Error is a structured node-side error. The node reports a coarse name
// ("HANDLER_ERROR", "REQUEST_VALIDATION_ERROR"), an optional nested cause
// with the specific condition, and a legacy code/message pair. Errors of
// this type mean the node answered; transport failures never surface as
// *Error.
type Error struct {
	Name    string `json:"name"`
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Cause   Cause  `json:"cause"`
}

// Cause carries the machine-readable condition, e.g. "UNKNOWN_ACCOUNT",
// "CONTRACT_CODE_NOT_FOUND", "METHOD_NOT_FOUND".
type Cause struct {
	Name string         `json:"name"`
	Info map[string]any `json:"info,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e.Cause.Name != "" && e.Message != "":
		return fmt.Sprintf("node error %s (%s): %s", e.Name, e.Cause.Name, e.Message)
	case e.Cause.Name != "":
		return fmt.Sprintf("node error %s (%s)", e.Name, e.Cause.Name)
	case e.Message != "":
		return fmt.Sprintf("node error %s: %s", e.Name, e.Message)
	default:
		return fmt.Sprintf("node error %s (code %d)", e.Name, e.Code)
	}
}

// CauseName returns the nested condition name, empty when absent.
func (e *Error) CauseName() string {
	return e.Cause.Name
}
