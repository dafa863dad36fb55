package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github/chapool/go-near-tools/internal/near/outcome"
	"github/chapool/go-near-tools/internal/near/units"
)

type getBalanceArgs struct {
	AccountID string `json:"account_id"`
}

func (s *Service) getBalanceDefinition() *Definition {
	return &Definition{
		Name:        "near_get_balance",
		Description: "Report the signer account's balance.",
		InputSchema: objectSchema(map[string]interface{}{
			"account_id": stringProperty("Account to inspect. Defaults to the signer account."),
		}),
		run: s.getBalance,
	}
}

func (s *Service) getBalance(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "balance lookup", Receiver: s.signer.ID()}

	var args getBalanceArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	// TODO: honor args.AccountID; the schema advertises it but the lookup
	// below always reports the signer balance (near_view_account covers
	// arbitrary accounts in the meantime).
	view, err := s.signer.Balance(ctx)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	text := fmt.Sprintf("account %s has %s NEAR (%s yoctoNEAR)",
		s.signer.ID(), units.FormatNear(view.Amount, units.DefaultFracDigits), view.Amount)
	if view.Locked != "" && view.Locked != "0" {
		text += fmt.Sprintf(", of which %s NEAR is staked", units.FormatNear(view.Locked, units.DefaultFracDigits))
	}

	return text, nil
}
