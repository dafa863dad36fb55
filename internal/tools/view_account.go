package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
	"github/chapool/go-near-tools/internal/near/units"
)

// noCodeHash is the base58 all-zero hash of accounts without contract code.
const noCodeHash = "11111111111111111111111111111111"

type viewAccountArgs struct {
	AccountID string `json:"account_id"`
}

func (s *Service) viewAccountDefinition() *Definition {
	return &Definition{
		Name:        "near_view_account",
		Description: "Show an account's balance, storage usage and contract state.",
		InputSchema: objectSchema(map[string]interface{}{
			"account_id": stringProperty("Account to inspect."),
		}, "account_id"),
		run: s.viewAccount,
	}
}

func (s *Service) viewAccount(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "account lookup"}

	var args viewAccountArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.AccountID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "account_id is required"), callCtx)
	}
	callCtx.Receiver = args.AccountID

	view, err := s.node.ViewAccount(ctx, args.AccountID)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "account %s\n", args.AccountID)
	fmt.Fprintf(&b, "balance: %s NEAR (%s yoctoNEAR)\n", units.FormatNear(view.Amount, units.DefaultFracDigits), view.Amount)
	fmt.Fprintf(&b, "staked: %s NEAR\n", units.FormatNear(view.Locked, units.DefaultFracDigits))
	fmt.Fprintf(&b, "storage used: %d bytes\n", view.StorageUsage)

	if view.CodeHash == "" || view.CodeHash == noCodeHash {
		b.WriteString("contract: none")
	} else {
		fmt.Fprintf(&b, "contract: deployed (code hash %s)", view.CodeHash)
	}

	return b.String(), nil
}
