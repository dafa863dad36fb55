package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type stakeArgs struct {
	Amount    string `json:"amount"`
	PublicKey string `json:"public_key"`
}

func (s *Service) stakeDefinition() *Definition {
	return &Definition{
		Name:        "near_stake",
		Description: "Stake a balance under a validator key. Unlike the other tools, amount is raw yoctoNEAR, matching what validator tooling prints.",
		InputSchema: objectSchema(map[string]interface{}{
			"amount":     stringProperty("Stake amount in yoctoNEAR (integer string). Staking \"0\" unstakes."),
			"public_key": stringProperty("Validator public key, base58 with optional ed25519: prefix."),
		}, "amount", "public_key"),
		Mutating: true,
		run:      s.stake,
	}
}

func (s *Service) stake(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "staking"}

	var args stakeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.PublicKey == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "public_key is required"), callCtx)
	}
	callCtx.PublicKey = args.PublicKey

	return s.submit(ctx, "", []action.Spec{
		action.Stake{Amount: args.Amount, PublicKey: args.PublicKey},
	}, callCtx)
}
