package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type deleteAccountArgs struct {
	BeneficiaryID string `json:"beneficiary_id"`
	Confirm       bool   `json:"confirm"`
}

func (s *Service) deleteAccountDefinition() *Definition {
	return &Definition{
		Name:        "near_delete_account",
		Description: "Delete the signer account and send its remaining balance to the beneficiary. Irreversible.",
		InputSchema: objectSchema(map[string]interface{}{
			"beneficiary_id": stringProperty("Account receiving the remaining balance."),
			"confirm": map[string]interface{}{
				"type":        "boolean",
				"description": "Must be true. Guards against accidental deletion of the signer account.",
			},
		}, "beneficiary_id", "confirm"),
		Mutating: true,
		run:      s.deleteAccount,
	}
}

func (s *Service) deleteAccount(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "account deletion"}

	var args deleteAccountArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.BeneficiaryID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "beneficiary_id is required"), callCtx)
	}
	if !args.Confirm {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "deleting the signer account is irreversible, set confirm to true to proceed"), callCtx)
	}

	return s.submit(ctx, "", []action.Spec{
		action.DeleteAccount{BeneficiaryID: args.BeneficiaryID},
	}, callCtx)
}
