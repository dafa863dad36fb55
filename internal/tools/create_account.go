package tools

import (
	"context"
	"encoding/json"

	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type createAccountArgs struct {
	NewAccountID   string `json:"new_account_id"`
	PublicKey      string `json:"public_key"`
	InitialBalance string `json:"initial_balance"`
}

func (s *Service) createAccountDefinition() *Definition {
	return &Definition{
		Name:        "near_create_account",
		Description: "Create a sub-account of the signer (e.g. app.signer.near) with a full-access key and optional initial funding.",
		InputSchema: objectSchema(map[string]interface{}{
			"new_account_id":  stringProperty("Account id to create. Must be a direct sub-account of the signer."),
			"public_key":      stringProperty("Full-access public key for the new account, base58 with optional ed25519: prefix."),
			"initial_balance": stringProperty("Optional initial funding in NEAR as a decimal string."),
		}, "new_account_id", "public_key"),
		Mutating: true,
		run:      s.createAccount,
	}
}

func (s *Service) createAccount(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "account creation"}

	var args createAccountArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	if args.NewAccountID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "new_account_id is required"), callCtx)
	}
	if args.PublicKey == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "public_key is required"), callCtx)
	}
	callCtx.Receiver = args.NewAccountID
	callCtx.PublicKey = args.PublicKey

	specs := []action.Spec{action.CreateAccount{}}
	if args.InitialBalance != "" {
		specs = append(specs, action.Transfer{Deposit: args.InitialBalance})
	}
	specs = append(specs, action.AddKey{
		PublicKey:  args.PublicKey,
		Permission: action.Permission{FullAccess: true},
	})

	return s.submit(ctx, args.NewAccountID, specs, callCtx)
}
