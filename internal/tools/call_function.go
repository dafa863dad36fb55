package tools

import (
	"context"
	"encoding/json"

	"github.com/aarondl/null/v8"
	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type callFunctionArgs struct {
	ContractID string         `json:"contract_id"`
	MethodName string         `json:"method_name"`
	Args       map[string]any `json:"args"`
	Gas        null.String    `json:"gas"`
	Deposit    null.String    `json:"deposit"`
}

func (s *Service) callFunctionDefinition() *Definition {
	return &Definition{
		Name:        "near_call_function",
		Description: "Call a state-changing contract method and wait for the final outcome.",
		InputSchema: objectSchema(map[string]interface{}{
			"contract_id": stringProperty("Account the contract is deployed on."),
			"method_name": stringProperty("Contract method to invoke."),
			"args": map[string]interface{}{
				"type":        "object",
				"description": "JSON arguments passed to the method. Defaults to an empty object.",
			},
			"gas":     stringProperty("Gas limit in TGas as a decimal string. Defaults to \"30\"."),
			"deposit": stringProperty("Deposit attached to the call in NEAR. Defaults to \"0\"."),
		}, "contract_id", "method_name"),
		Mutating: true,
		run:      s.callFunction,
	}
}

func (s *Service) callFunction(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "function call"}

	var args callFunctionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.ContractID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "contract_id is required"), callCtx)
	}
	callCtx.Receiver = args.ContractID
	callCtx.Method = args.MethodName

	return s.submit(ctx, args.ContractID, []action.Spec{
		action.FunctionCall{
			ContractID: args.ContractID,
			MethodName: args.MethodName,
			Args:       args.Args,
			Gas:        args.Gas,
			Deposit:    args.Deposit,
		},
	}, callCtx)
}
