// Package account owns the signing identity and the submission flow: fetch
// key state, assemble, sign, broadcast, one transaction per call. It keeps
// no state between calls; nonce and block anchor are fetched fresh every
// time.
package account

import (
	"context"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/keys"
	"github/chapool/go-near-tools/internal/near/rpc"
	"github/chapool/go-near-tools/internal/near/tx"
	"github/chapool/go-near-tools/internal/util"
)

// ErrNoSigner is returned by mutating calls on a read-only account.
var ErrNoSigner = errors.New("no signing account configured")

// Account pairs an account id with its signing key and a node connection.
// The key may be absent, leaving a read-only handle for view calls.
type Account struct {
	id     string
	kp     *keys.KeyPair
	client *rpc.Client
}

// New builds a signing account handle.
func New(id string, kp *keys.KeyPair, client *rpc.Client) *Account {
	return &Account{id: id, kp: kp, client: client}
}

// NewReadOnly builds a handle that can only run view calls.
func NewReadOnly(client *rpc.Client) *Account {
	return &Account{client: client}
}

// ID returns the configured account id, empty for read-only handles.
func (a *Account) ID() string {
	return a.id
}

// CanSign reports whether mutating calls are possible.
func (a *Account) CanSign() bool {
	return a.id != "" && a.kp != nil
}

// PublicKey returns the signing key's public half. Only valid when CanSign.
func (a *Account) PublicKey() keys.PublicKey {
	return a.kp.PublicKey()
}

// Client exposes the underlying node connection for view-only paths.
func (a *Account) Client() *rpc.Client {
	return a.client
}

// Balance fetches the account's own state.
func (a *Account) Balance(ctx context.Context) (*rpc.AccountView, error) {
	if a.id == "" {
		return nil, ErrNoSigner
	}
	return a.client.ViewAccount(ctx, a.id)
}

// SignAndSendTransaction submits all actions as one transaction against
// receiverID and waits for the final outcome. The whole ordered list shares
// one transaction boundary: it succeeds or fails atomically on chain.
func (a *Account) SignAndSendTransaction(ctx context.Context, receiverID string, actions []tx.Action) (*rpc.TxOutcome, error) {
	if !a.CanSign() {
		return nil, ErrNoSigner
	}
	if len(actions) == 0 {
		return nil, errors.New("transaction requires at least one action")
	}
	if receiverID == "" {
		receiverID = a.id
	}

	keyState, err := a.client.ViewAccessKey(ctx, a.id, a.kp.PublicKey().String())
	if err != nil {
		return nil, err
	}

	blockHash, err := decodeBlockHash(keyState.BlockHash)
	if err != nil {
		return nil, err
	}

	txn := tx.NewTransaction(a.id, a.kp.PublicKey(), keyState.Nonce+1, receiverID, blockHash, actions)
	signed, txID, err := txn.Sign(a.kp)
	if err != nil {
		return nil, err
	}

	raw, err := signed.Serialize()
	if err != nil {
		return nil, err
	}

	log := util.LogFromContext(ctx)
	log.Debug().
		Str("signer", a.id).
		Str("receiver", receiverID).
		Str("txID", txID).
		Uint64("nonce", keyState.Nonce+1).
		Int("actions", len(actions)).
		Msg("Broadcasting transaction")

	out, err := a.client.BroadcastTxCommit(ctx, codec.EncodeBase64(raw))
	if err != nil {
		return nil, err
	}
	if out.Transaction.Hash == "" {
		out.Transaction.Hash = txID
	}
	return out, nil
}

// decodeBlockHash parses the base58 block anchor from a query response.
func decodeBlockHash(s string) ([tx.BlockHashSize]byte, error) {
	var bh [tx.BlockHashSize]byte

	raw, err := base58.Decode(s)
	if err != nil {
		return bh, errors.Wrap(err, "node returned an invalid block hash")
	}
	if len(raw) != tx.BlockHashSize {
		return bh, errors.Errorf("node returned a %d-byte block hash, expected %d", len(raw), tx.BlockHashSize)
	}
	copy(bh[:], raw)
	return bh, nil
}
