// Package tx defines the binary transaction format and signing. Field order
// in every struct here is wire order: values are borsh-serialized as-is, so
// reordering a field breaks the signature.
package tx

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/keys"
)

// BlockHashSize is the length of the recency anchor every transaction embeds.
const BlockHashSize = 32

// Transaction is the unsigned payload. Nonce and BlockHash tie it to the
// signer's key state and to a recent block respectively.
type Transaction struct {
	SignerID   string
	PublicKey  keys.PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [BlockHashSize]byte
	Actions    []Action
}

// Signature is a curve-tagged ed25519 signature.
type Signature struct {
	KeyType uint8
	Data    [64]byte
}

// SignedTransaction is what gets broadcast.
type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// NewTransaction assembles an unsigned transaction around an ordered action
// batch.
func NewTransaction(signerID string, publicKey keys.PublicKey, nonce uint64, receiverID string, blockHash [BlockHashSize]byte, actions []Action) Transaction {
	return Transaction{
		SignerID:   signerID,
		PublicKey:  publicKey,
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHash,
		Actions:    actions,
	}
}

// Hash returns the sha256 digest of the serialized transaction. The digest is
// both what gets signed and, base58-encoded, the transaction id.
func (t Transaction) Hash() ([32]byte, error) {
	raw, err := borsh.Serialize(t)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to serialize transaction")
	}
	return sha256.Sum256(raw), nil
}

// Sign produces the signed transaction and its id. The signature covers the
// digest, not the raw serialization.
func (t Transaction) Sign(kp *keys.KeyPair) (*SignedTransaction, string, error) {
	digest, err := t.Hash()
	if err != nil {
		return nil, "", err
	}

	sig := Signature{KeyType: keys.KeyTypeED25519}
	copy(sig.Data[:], kp.Sign(digest[:]))

	return &SignedTransaction{Transaction: t, Signature: sig}, base58.Encode(digest[:]), nil
}

// Serialize renders the signed transaction in wire form.
func (st *SignedTransaction) Serialize() ([]byte, error) {
	raw, err := borsh.Serialize(*st)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize signed transaction")
	}
	return raw, nil
}
