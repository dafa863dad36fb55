package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type deleteKeyArgs struct {
	PublicKey string `json:"public_key"`
}

func (s *Service) deleteKeyDefinition() *Definition {
	return &Definition{
		Name:        "near_delete_key",
		Description: "Remove an access key from the signer account.",
		InputSchema: objectSchema(map[string]interface{}{
			"public_key": stringProperty("Public key to remove, base58 with optional ed25519: prefix."),
		}, "public_key"),
		Mutating: true,
		run:      s.deleteKey,
	}
}

func (s *Service) deleteKey(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "key deletion"}

	var args deleteKeyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.PublicKey == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "public_key is required"), callCtx)
	}
	callCtx.PublicKey = args.PublicKey

	return s.submit(ctx, "", []action.Spec{
		action.DeleteKey{PublicKey: args.PublicKey},
	}, callCtx)
}
