package rpc

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Finality selects which block a query runs against.
type Finality string

const (
	// FinalityFinal is the last block irreversibly agreed on.
	FinalityFinal Finality = "final"
	// FinalityOptimistic is the newest block the queried node has seen.
	FinalityOptimistic Finality = "optimistic"
)

// QueryHeader is the block anchor every query response carries.
type QueryHeader struct {
	BlockHeight uint64 `json:"block_height"`
	BlockHash   string `json:"block_hash"`
}

// AccountView is the node's view of an account.
type AccountView struct {
	QueryHeader
	Amount        string `json:"amount"` // yoctoNEAR
	Locked        string `json:"locked"` // staked portion, yoctoNEAR
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
}

// AccessKeyView is one key's state. Permission is either the "FullAccess"
// string or a {"FunctionCall": {...}} object; it is passed through to
// callers untyped.
type AccessKeyView struct {
	QueryHeader
	Nonce      uint64 `json:"nonce"`
	Permission any    `json:"permission"`
}

// AccessKeyList enumerates all keys on an account.
type AccessKeyList struct {
	QueryHeader
	Keys []AccessKeyEntry `json:"keys"`
}

// AccessKeyEntry pairs a public key with its state.
type AccessKeyEntry struct {
	PublicKey string `json:"public_key"`
	AccessKey struct {
		Nonce      uint64 `json:"nonce"`
		Permission any    `json:"permission"`
	} `json:"access_key"`
}

// CallResult is a view-call response. An Error here means the node ran the
// query and the execution itself failed; transport and node errors surface
// through the usual error return instead.
type CallResult struct {
	QueryHeader
	Result IntBytes `json:"result"`
	Logs   []string `json:"logs"`
	Error  string   `json:"error"`
}

// StateView lists raw contract storage under a key prefix.
type StateView struct {
	QueryHeader
	Values []StateItem `json:"values"`
}

// StateItem is one storage entry, both halves base64.
type StateItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TxOutcome is the final execution outcome of a broadcast transaction.
// Status stays raw: it is a union (in-progress strings, success object,
// failure object) that the outcome package takes apart.
type TxOutcome struct {
	Status          json.RawMessage    `json:"status"`
	Transaction     TxView             `json:"transaction"`
	TxReceipt       ExecutionWrapper   `json:"transaction_outcome"`
	ReceiptOutcomes []ExecutionWrapper `json:"receipts_outcome"`
}

// TxView is the echo of the submitted transaction; only the hash is used.
type TxView struct {
	Hash string `json:"hash"`
}

// ExecutionWrapper is one receipt-level outcome.
type ExecutionWrapper struct {
	ID      string `json:"id"`
	Outcome struct {
		Logs        []string `json:"logs"`
		GasBurnt    uint64   `json:"gas_burnt"`
		TokensBurnt string   `json:"tokens_burnt"`
		ExecutorID  string   `json:"executor_id"`
	} `json:"outcome"`
}

// Logs flattens all receipt logs in execution order.
func (o *TxOutcome) Logs() []string {
	var logs []string
	logs = append(logs, o.TxReceipt.Outcome.Logs...)
	for _, r := range o.ReceiptOutcomes {
		logs = append(logs, r.Outcome.Logs...)
	}
	return logs
}

// GasBurnt totals gas across the transaction and all receipts.
func (o *TxOutcome) GasBurnt() uint64 {
	total := o.TxReceipt.Outcome.GasBurnt
	for _, r := range o.ReceiptOutcomes {
		total += r.Outcome.GasBurnt
	}
	return total
}

// StatusResponse is the node's status report.
type StatusResponse struct {
	ChainID string `json:"chain_id"`
	Version struct {
		Version string `json:"version"`
		Build   string `json:"build"`
	} `json:"version"`
	SyncInfo struct {
		LatestBlockHash   string `json:"latest_block_hash"`
		LatestBlockHeight uint64 `json:"latest_block_height"`
		Syncing           bool   `json:"syncing"`
	} `json:"sync_info"`
}

// GasPriceResult is the gas price at a block, yoctoNEAR per gas unit.
type GasPriceResult struct {
	GasPrice string `json:"gas_price"`
}

// IntBytes is a byte slice the node encodes as a JSON array of integers
// rather than base64. Both spellings are accepted on decode.
type IntBytes []byte

func (b *IntBytes) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw []byte
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "byte payload is neither an integer array nor base64")
		}
		*b = raw
		return nil
	}

	var ints []uint16
	if err := json.Unmarshal(data, &ints); err != nil {
		return errors.Wrap(err, "byte payload is neither an integer array nor base64")
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v > 0xFF {
			return errors.Errorf("byte payload element %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

func (b IntBytes) MarshalJSON() ([]byte, error) {
	ints := make([]uint16, len(b))
	for i, v := range b {
		ints[i] = uint16(v)
	}
	return json.Marshal(ints)
}
