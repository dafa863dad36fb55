package tools

import (
	"context"
	"encoding/json"

	"github.com/aarondl/null/v8"
	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type addKeyArgs struct {
	PublicKey   string      `json:"public_key"`
	ReceiverID  string      `json:"receiver_id"`
	MethodNames []string    `json:"method_names"`
	Allowance   null.String `json:"allowance"`
}

func (s *Service) addKeyDefinition() *Definition {
	return &Definition{
		Name:        "near_add_key",
		Description: "Add an access key to the signer account: a full-access key by default, a function-call key scoped to one contract when receiver_id is given.",
		InputSchema: objectSchema(map[string]interface{}{
			"public_key":  stringProperty("Public key to add, base58 with optional ed25519: prefix."),
			"receiver_id": stringProperty("Contract the key is limited to. Omit for a full-access key."),
			"method_names": map[string]interface{}{
				"type":        "array",
				"description": "Methods the key may call. Empty allows every method of the contract.",
				"items":       map[string]interface{}{"type": "string"},
			},
			"allowance": stringProperty("Gas spending allowance in NEAR as a decimal string. Omit for unlimited."),
		}, "public_key"),
		Mutating: true,
		run:      s.addKey,
	}
}

func (s *Service) addKey(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "key addition"}

	var args addKeyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.PublicKey == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "public_key is required"), callCtx)
	}
	if args.ReceiverID == "" && (len(args.MethodNames) > 0 || args.Allowance.Valid) {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "method_names and allowance only apply to function-call keys, set receiver_id"), callCtx)
	}
	callCtx.PublicKey = args.PublicKey

	permission := action.Permission{FullAccess: true}
	if args.ReceiverID != "" {
		permission = action.Permission{FunctionCall: &action.FunctionCallScope{
			ReceiverID:  args.ReceiverID,
			MethodNames: args.MethodNames,
			Allowance:   args.Allowance,
		}}
	}

	return s.submit(ctx, "", []action.Spec{
		action.AddKey{PublicKey: args.PublicKey, Permission: permission},
	}, callCtx)
}
