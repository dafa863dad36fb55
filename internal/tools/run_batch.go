package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type runBatchArgs struct {
	ReceiverID string            `json:"receiver_id"`
	Actions    []json.RawMessage `json:"actions"`
}

func (s *Service) runBatchDefinition() *Definition {
	return &Definition{
		Name:        "near_run_batch",
		Description: "Submit an ordered list of actions as one atomic transaction against a single receiver account. All actions succeed or fail together.",
		InputSchema: objectSchema(map[string]interface{}{
			"receiver_id": stringProperty("Account the whole batch executes against. Defaults to the signer account."),
			"actions": map[string]interface{}{
				"type":        "array",
				"description": "Action objects, each tagged with a type field: CreateAccount, DeployContract, FunctionCall, Transfer, Stake, AddKey, DeleteKey or DeleteAccount.",
				"items":       map[string]interface{}{"type": "object"},
				"minItems":    1,
			},
		}, "actions"),
		Mutating: true,
		run:      s.runBatch,
	}
}

func (s *Service) runBatch(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "batch"}

	var args runBatchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	callCtx.Receiver = args.ReceiverID

	specs, err := action.DecodeAll(args.Actions)
	if err != nil {
		return "", classifyOrPass(err, callCtx)
	}

	return s.submit(ctx, args.ReceiverID, specs, callCtx)
}
