// Package outcome turns raw submission results into one of exactly two
// shapes: a display-ready success or a classified error. Nothing above this
// package ever sees a raw node failure.
package outcome

import (
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/rpc"
)

// VoidValue is the return value reported when a transaction succeeded
// without producing a payload.
const VoidValue = "void"

// Success is the normalized happy path of a submitted transaction.
type Success struct {
	// Value is the decoded return payload: parsed JSON when the contract
	// returned JSON, the raw string otherwise, VoidValue when absent.
	Value any
	// TxHash identifies the transaction on chain.
	TxHash string
	// Logs are the contract log lines emitted across all receipts.
	Logs []string
	// GasBurnt is the total gas consumed, in gas units.
	GasBurnt uint64
}

// Failure is the parsed failure branch of an execution status. Fields are
// explicit; classification never probes loosely-typed maps.
type Failure struct {
	// ActionIndex is the zero-based position of the failing action within
	// the batch, when the node reported one.
	ActionIndex *int
	// Kind is the symbolic failure type, e.g. "AccountDoesNotExist".
	Kind string
	// KindInfo carries the variant's fields (account ids, keys, balances).
	KindInfo map[string]any
	// ExecutionError is the contract's own failure text, when the failure
	// originated inside contract code.
	ExecutionError string
	// Raw preserves the original JSON for fallback messages.
	Raw string
}

// Normalize inspects a final execution outcome and produces either a Success
// or a classified error, never both.
func Normalize(out *rpc.TxOutcome, callCtx Context) (*Success, error) {
	value, failure, err := parseStatus(out.Status)
	if err != nil {
		return nil, Classify(err, callCtx)
	}
	if failure != nil {
		return nil, classifyFailure(failure, callCtx)
	}

	return &Success{
		Value:    value,
		TxHash:   out.Transaction.Hash,
		Logs:     out.Logs(),
		GasBurnt: out.GasBurnt(),
	}, nil
}

// parseStatus takes the status union apart. Exactly one of the returns is
// meaningful: a decoded success value, a parsed failure, or a parse error.
func parseStatus(raw json.RawMessage) (any, *Failure, error) {
	if len(raw) == 0 {
		return nil, nil, nearerr.New(nearerr.CategoryUnclassified, "submission result carries no execution status")
	}

	// In-progress markers are plain strings; a commit-mode submission
	// returning one means the transaction never reached a final state.
	var marker string
	if err := json.Unmarshal(raw, &marker); err == nil {
		return nil, nil, nearerr.Newf(nearerr.CategoryUnclassified, "transaction did not reach a final state (status %q)", marker)
	}

	var status struct {
		SuccessValue     *string         `json:"SuccessValue"`
		SuccessReceiptID *string         `json:"SuccessReceiptId"`
		Failure          json.RawMessage `json:"Failure"`
	}
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, nil, nearerr.Wrap(nearerr.CategoryUnclassified, err, "submission result carries an unreadable execution status")
	}

	switch {
	case status.SuccessValue != nil:
		return decodeSuccessValue(*status.SuccessValue), nil, nil
	case status.SuccessReceiptID != nil:
		// Success delegated to a receipt; there is no payload to decode.
		return VoidValue, nil, nil
	case len(status.Failure) > 0:
		return nil, parseFailure(status.Failure), nil
	default:
		return nil, nil, nearerr.New(nearerr.CategoryUnclassified, "submission result carries an empty execution status")
	}
}

// decodeSuccessValue maps the base64 payload to its display value. The
// absence of a payload is the legitimate value "void", not an error; a
// payload the node mangled degrades to the raw string rather than failing a
// transaction that did succeed.
func decodeSuccessValue(b64 string) any {
	if b64 == "" {
		return VoidValue
	}
	raw, err := codec.DecodeBase64("success_value", b64)
	if err != nil {
		return b64
	}
	return codec.DecodeResult(raw)
}

// parseFailure extracts the symbolic kind and contract error text from the
// failure JSON. The node nests them differently per failure family
// (action-level vs transaction-level); both land in the same struct.
func parseFailure(raw json.RawMessage) *Failure {
	f := &Failure{Raw: string(raw)}

	var failure struct {
		ActionError *struct {
			Index *int            `json:"index"`
			Kind  json.RawMessage `json:"kind"`
		} `json:"ActionError"`
		InvalidTxError json.RawMessage `json:"InvalidTxError"`
	}
	if err := json.Unmarshal(raw, &failure); err != nil {
		return f
	}

	switch {
	case failure.ActionError != nil:
		f.ActionIndex = failure.ActionError.Index
		f.Kind, f.KindInfo = splitVariant(failure.ActionError.Kind)
	case len(failure.InvalidTxError) > 0:
		f.Kind, f.KindInfo = splitVariant(failure.InvalidTxError)
	}

	// Contract-level failures bury the panic text one level deeper; surface
	// it as the orthogonal execution-error signal.
	if f.Kind == "FunctionCallError" {
		f.ExecutionError = executionErrorText(f.KindInfo)
	}

	return f
}

// splitVariant unwraps a single-key tagged union {"Kind": {...fields}} or a
// bare "Kind" string.
func splitVariant(raw json.RawMessage) (string, map[string]any) {
	if len(raw) == 0 {
		return "", nil
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		return tag, nil
	}

	var variant map[string]json.RawMessage
	if err := json.Unmarshal(raw, &variant); err != nil || len(variant) != 1 {
		return "", nil
	}

	for kind, body := range variant {
		var info map[string]any
		if err := json.Unmarshal(body, &info); err != nil {
			return kind, nil
		}
		return kind, info
	}
	return "", nil
}

// executionErrorText digs the human panic text out of a FunctionCallError
// payload. Known spellings: {"ExecutionError": "..."} directly, or the text
// nested under an error-variant object.
func executionErrorText(info map[string]any) string {
	if info == nil {
		return ""
	}
	if s, ok := info["ExecutionError"].(string); ok {
		return s
	}
	for _, v := range info {
		if nested, ok := v.(map[string]any); ok {
			if s, ok := nested["ExecutionError"].(string); ok {
				return s
			}
		}
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
