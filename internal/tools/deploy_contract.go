package tools

import (
	"context"
	"encoding/json"

	"github.com/gabriel-vasile/mimetype"
	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type deployContractArgs struct {
	CodeBase64 string `json:"code_base64"`
}

func (s *Service) deployContractDefinition() *Definition {
	return &Definition{
		Name:        "near_deploy_contract",
		Description: "Deploy compiled WebAssembly contract code to the signer account. Redeploying replaces existing code, state is kept.",
		InputSchema: objectSchema(map[string]interface{}{
			"code_base64": stringProperty("Base64-encoded .wasm contract bytecode."),
		}, "code_base64"),
		Mutating: true,
		run:      s.deployContract,
	}
}

func (s *Service) deployContract(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "deployment"}

	var args deployContractArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	code, err := codec.DecodeBase64("code_base64", args.CodeBase64)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	callCtx.ContractBytes = len(code)

	// Catch the common mistake of deploying source files or the wrong build
	// artifact before the deposit for a doomed transaction is spent.
	if detected := mimetype.Detect(code); !detected.Is("application/wasm") {
		return "", outcome.Classify(
			nearerr.Newf(nearerr.CategoryArgEncoding, "code_base64 is not compiled WebAssembly (detected %s)", detected.String()),
			callCtx,
		)
	}

	return s.submit(ctx, "", []action.Spec{
		action.DeployContract{CodeBase64: args.CodeBase64},
	}, callCtx)
}
