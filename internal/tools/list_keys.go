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

type listKeysArgs struct {
	AccountID string `json:"account_id"`
}

func (s *Service) listKeysDefinition() *Definition {
	return &Definition{
		Name:        "near_list_keys",
		Description: "List every access key of an account with its nonce and permission.",
		InputSchema: objectSchema(map[string]interface{}{
			"account_id": stringProperty("Account to inspect. Defaults to the signer account."),
		}),
		run: s.listKeys,
	}
}

func (s *Service) listKeys(ctx context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "key listing"}

	var args listKeysArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	accountID := args.AccountID
	if accountID == "" {
		accountID = s.signer.ID()
	}
	if accountID == "" {
		return "", outcome.Classify(nearerr.New(nearerr.CategoryArgEncoding, "account_id is required when no signer account is configured"), callCtx)
	}
	callCtx.Receiver = accountID

	list, err := s.node.ViewAccessKeyList(ctx, accountID)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	if len(list.Keys) == 0 {
		return fmt.Sprintf("account %s has no access keys", accountID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "account %s has %d access key(s):", accountID, len(list.Keys))
	for _, key := range list.Keys {
		fmt.Fprintf(&b, "\n  %s  nonce %d  %s", key.PublicKey, key.AccessKey.Nonce, renderPermission(key.AccessKey.Permission))
	}

	return b.String(), nil
}

// renderPermission flattens the node's permission union (the "FullAccess"
// string or a {"FunctionCall": {...}} object) into one display line.
func renderPermission(permission any) string {
	if tag, ok := permission.(string); ok {
		if tag == "FullAccess" {
			return "full access"
		}
		return tag
	}

	wrapper, ok := permission.(map[string]any)
	if !ok {
		return "unknown permission"
	}
	scope, ok := wrapper["FunctionCall"].(map[string]any)
	if !ok {
		return "unknown permission"
	}

	receiver, _ := scope["receiver_id"].(string)
	parts := []string{fmt.Sprintf("function call on %s", receiver)}

	if methods, ok := scope["method_names"].([]any); ok && len(methods) > 0 {
		names := make([]string, 0, len(methods))
		for _, m := range methods {
			if name, ok := m.(string); ok {
				names = append(names, name)
			}
		}
		parts = append(parts, "methods: "+strings.Join(names, ","))
	} else {
		parts = append(parts, "methods: any")
	}

	if allowance, ok := scope["allowance"].(string); ok && allowance != "" {
		parts = append(parts, fmt.Sprintf("allowance: %s NEAR", units.FormatNear(allowance, units.DefaultFracDigits)))
	} else {
		parts = append(parts, "allowance: unlimited")
	}

	return strings.Join(parts, ", ")
}
