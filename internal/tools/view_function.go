package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type viewFunctionArgs struct {
	ContractID string         `json:"contract_id"`
	MethodName string         `json:"method_name"`
	Args       map[string]any `json:"args"`
}

func (s *Service) viewFunctionDefinition() *Definition {
	return &Definition{
		Name:        "near_view_function",
		Description: "Call a read-only contract method. Runs against the latest final block and costs nothing.",
		InputSchema: objectSchema(map[string]interface{}{
			"contract_id": stringProperty("Account the contract is deployed on."),
			"method_name": stringProperty("View method to invoke."),
			"args": map[string]interface{}{
				"type":        "object",
				"description": "JSON arguments passed to the method. Defaults to an empty object.",
			},
		}, "contract_id", "method_name"),
		run: s.viewFunction,
	}
}

func (s *Service) viewFunction(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "view call"}

	var args viewFunctionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.ContractID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "contract_id is required"), callCtx)
	}
	if args.MethodName == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "method_name is required"), callCtx)
	}
	callCtx.Receiver = args.ContractID
	callCtx.Method = args.MethodName

	encoded, err := codec.EncodeArgs(args.Args)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	res, err := s.node.CallFunction(ctx, args.ContractID, args.MethodName, codec.EncodeBase64(encoded))
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "result: %s", renderValue(codec.DecodeResult(res.Result)))

	if len(res.Logs) > 0 {
		b.WriteString("\nlogs:")
		for _, line := range res.Logs {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}

	return b.String(), nil
}
