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

type viewStateArgs struct {
	AccountID    string `json:"account_id"`
	PrefixBase64 string `json:"prefix_base64"`
}

func (s *Service) viewStateDefinition() *Definition {
	return &Definition{
		Name:        "near_view_state",
		Description: "Dump a contract's raw storage entries, optionally limited to keys under a prefix. Keys and values are base64.",
		InputSchema: objectSchema(map[string]interface{}{
			"account_id":    stringProperty("Contract account to inspect."),
			"prefix_base64": stringProperty("Base64-encoded key prefix. Omit to dump everything."),
		}, "account_id"),
		run: s.viewState,
	}
}

func (s *Service) viewState(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "state lookup"}

	var args viewStateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.AccountID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "account_id is required"), callCtx)
	}
	callCtx.Receiver = args.AccountID

	if args.PrefixBase64 != "" {
		if _, err := codec.DecodeBase64("prefix_base64", args.PrefixBase64); err != nil {
			return "", outcome.Classify(err, callCtx)
		}
	}

	state, err := s.node.ViewState(ctx, args.AccountID, args.PrefixBase64)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	if len(state.Values) == 0 {
		return fmt.Sprintf("account %s has no state entries under the given prefix", args.AccountID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "account %s has %d state entries:", args.AccountID, len(state.Values))
	for _, item := range state.Values {
		fmt.Fprintf(&b, "\n  %s = %s", item.Key, item.Value)
	}

	return b.String(), nil
}
