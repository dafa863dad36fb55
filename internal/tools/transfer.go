package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type transferArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
}

func (s *Service) transferDefinition() *Definition {
	return &Definition{
		Name:        "near_transfer",
		Description: "Send NEAR tokens to another account.",
		InputSchema: objectSchema(map[string]interface{}{
			"receiver_id": stringProperty("Account receiving the tokens."),
			"amount":      stringProperty("Amount in NEAR as a decimal string, e.g. \"0.5\"."),
		}, "receiver_id", "amount"),
		Mutating: true,
		run:      s.transfer,
	}
}

func (s *Service) transfer(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "transfer"}

	var args transferArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.ReceiverID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "receiver_id is required"), callCtx)
	}
	callCtx.Receiver = args.ReceiverID

	return s.submit(ctx, args.ReceiverID, []action.Spec{
		action.Transfer{Deposit: args.Amount},
	}, callCtx)
}
