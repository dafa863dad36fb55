// Package codec handles the byte-level shape of contract payloads: JSON
// argument encoding for function calls and base64 handling for everything the
// RPC layer ships as text.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github/chapool/go-near-tools/internal/near/nearerr"
)

// EncodeArgs marshals function-call arguments into the UTF-8 JSON bytes the
// contract receives. A nil map encodes as the empty object so every call
// carries a well-formed payload.
func EncodeArgs(args map[string]any) ([]byte, error) {
	if args == nil {
		args = map[string]any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryArgEncoding, err, "cannot encode call arguments as JSON")
	}
	return b, nil
}

// DecodeResult interprets raw return bytes from a contract. Contracts that
// speak JSON get their value back as parsed JSON (numbers kept as
// json.Number, ledger values overflow float64); anything else is surfaced as
// the literal string.
func DecodeResult(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	// Trailing garbage after a valid JSON value means it was never JSON.
	if dec.More() {
		return string(raw)
	}
	return v
}

// EncodeBase64 renders bytes in the standard padded alphabet used across the
// RPC surface.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes a standard base64 string. field names the offending
// input in the error message since tool payloads carry several base64 fields.
func DecodeBase64(field, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryInvalidBase64, err, "field "+field+" is not valid base64")
	}
	return b, nil
}

// Base64DecodedLen reports how many bytes a padded base64 string decodes to
// without decoding it. Used to size-check contract code before the bytes are
// ever materialized.
func Base64DecodedLen(s string) int {
	n := len(s)
	if n == 0 {
		return 0
	}
	switch {
	case strings.HasSuffix(s, "=="):
		return n*3/4 - 2
	case strings.HasSuffix(s, "="):
		return n*3/4 - 1
	default:
		return n * 3 / 4
	}
}
