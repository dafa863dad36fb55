package rpc

import (
	"context"

	"github.com/pkg/errors"
)

// queryParams is the named-parameter shape of the node's query API. Every
// view goes through it; request_type selects the view.
type queryParams struct {
	RequestType  string  `json:"request_type"`
	Finality     string  `json:"finality,omitempty"`
	AccountID    string  `json:"account_id,omitempty"`
	PublicKey    string  `json:"public_key,omitempty"`
	MethodName   string  `json:"method_name,omitempty"`
	ArgsBase64   string  `json:"args_base64,omitempty"`
	PrefixBase64 *string `json:"prefix_base64,omitempty"`
}

// ViewAccount fetches the account's balance and storage state.
func (c *Client) ViewAccount(ctx context.Context, accountID string) (*AccountView, error) {
	var out AccountView
	err := c.Call(ctx, "query", queryParams{
		RequestType: "view_account",
		Finality:    string(FinalityFinal),
		AccountID:   accountID,
	}, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to view account %s", accountID)
	}
	return &out, nil
}

// ViewAccessKey fetches one key's nonce and permission. Optimistic finality:
// the nonce must reflect transactions the network has seen but not yet
// finalized, or back-to-back submissions collide.
func (c *Client) ViewAccessKey(ctx context.Context, accountID, publicKey string) (*AccessKeyView, error) {
	var out AccessKeyView
	err := c.Call(ctx, "query", queryParams{
		RequestType: "view_access_key",
		Finality:    string(FinalityOptimistic),
		AccountID:   accountID,
		PublicKey:   publicKey,
	}, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to view access key %s of %s", publicKey, accountID)
	}
	return &out, nil
}

// ViewAccessKeyList fetches every key on the account.
func (c *Client) ViewAccessKeyList(ctx context.Context, accountID string) (*AccessKeyList, error) {
	var out AccessKeyList
	err := c.Call(ctx, "query", queryParams{
		RequestType: "view_access_key_list",
		Finality:    string(FinalityFinal),
		AccountID:   accountID,
	}, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list access keys of %s", accountID)
	}
	return &out, nil
}

// CallFunction runs a read-only contract method. argsBase64 is the base64 of
// the JSON argument bytes.
func (c *Client) CallFunction(ctx context.Context, contractID, methodName, argsBase64 string) (*CallResult, error) {
	var out CallResult
	err := c.Call(ctx, "query", queryParams{
		RequestType: "call_function",
		Finality:    string(FinalityFinal),
		AccountID:   contractID,
		MethodName:  methodName,
		ArgsBase64:  argsBase64,
	}, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s on %s", methodName, contractID)
	}
	if out.Error != "" {
		return nil, errors.Errorf("view call %s on %s failed: %s", methodName, contractID, out.Error)
	}
	return &out, nil
}

// ViewState dumps the contract storage entries under prefixBase64 (empty
// prefix dumps everything the node is willing to return).
func (c *Client) ViewState(ctx context.Context, accountID, prefixBase64 string) (*StateView, error) {
	var out StateView
	err := c.Call(ctx, "query", queryParams{
		RequestType:  "view_state",
		Finality:     string(FinalityFinal),
		AccountID:    accountID,
		PrefixBase64: &prefixBase64,
	}, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to view state of %s", accountID)
	}
	return &out, nil
}

// BroadcastTxCommit submits a signed transaction and waits for its final
// outcome. This is the only positional-parameter method on the surface.
func (c *Client) BroadcastTxCommit(ctx context.Context, signedBase64 string) (*TxOutcome, error) {
	var out TxOutcome
	err := c.Call(ctx, "broadcast_tx_commit", []string{signedBase64}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Status reports the node's chain id, version and sync state.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.Call(ctx, "status", nil, &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch node status")
	}
	return &out, nil
}

// GasPrice reports the current gas price in yoctoNEAR per gas unit.
func (c *Client) GasPrice(ctx context.Context) (*GasPriceResult, error) {
	var out GasPriceResult
	if err := c.Call(ctx, "gas_price", []any{nil}, &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch gas price")
	}
	return &out, nil
}
