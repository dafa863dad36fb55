package tx_test

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/keys"
	"github/chapool/go-near-tools/internal/near/tx"
)

func fixedPublicKey() keys.PublicKey {
	pk := keys.PublicKey{KeyType: keys.KeyTypeED25519}
	for i := range pk.Data {
		pk.Data[i] = byte(i + 1)
	}
	return pk
}

func fixedBlockHash() [tx.BlockHashSize]byte {
	var bh [tx.BlockHashSize]byte
	for i := range bh {
		bh[i] = byte(i)
	}
	return bh
}

// fixedTransaction covers one variant of every encoding detail: strings,
// u64, u128, byte vectors, string vectors, nested enums and options.
func fixedTransaction() tx.Transaction {
	pk := fixedPublicKey()

	oneNear, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	allowance, _ := new(big.Int).SetString("250000000000000000000000", 10)

	return tx.NewTransaction(
		"alice.near",
		pk,
		107,
		"bob.near",
		fixedBlockHash(),
		[]tx.Action{
			tx.NewTransfer(oneNear),
			tx.NewFunctionCall("ping", []byte("{}"), 30_000_000_000_000, nil),
			tx.NewAddKey(pk, tx.FunctionCallAccessKey("bob.near", []string{"get", "set"}, allowance)),
		},
	)
}

// The digest doubles as the transaction id, so its value is pinned: any
// serialization drift (field order, enum ordinals, integer widths) shows up
// here.
func TestTransactionHashKnownAnswer(t *testing.T) {
	digest, err := fixedTransaction().Hash()
	require.NoError(t, err)
	assert.Equal(t, "BCyaWDnU9YEhPZVZ2owtoarZZcMEoCNZjxSSRnxLeXxm", base58.Encode(digest[:]))
}

func TestSignedTransactionSerializeKnownBytes(t *testing.T) {
	sig := tx.Signature{KeyType: keys.KeyTypeED25519}
	for i := range sig.Data {
		sig.Data[i] = 0x5A
	}

	st := &tx.SignedTransaction{Transaction: fixedTransaction(), Signature: sig}
	raw, err := st.Serialize()
	require.NoError(t, err)
	assert.Len(t, raw, 314)

	const want = "CgAAAGFsaWNlLm5lYXIAAQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyBrAAAAAAAAAAgAAABib2IubmVhcgABAgMEBQYHCAkKCwwNDg8QERITFBUWFxgZGhscHR4fAwAAAAMAAACh7czOG8LTAAAAAAAAAgQAAABwaW5nAgAAAHt9AOBX60gbAAAAAAAAAAAAAAAAAAAAAAAABQABAgMEBQYHCAkKCwwNDg8QERITFBUWFxgZGhscHR4fIAAAAAAAAAAAAAEAAEBoO7PzhvA0AAAAAAAACAAAAGJvYi5uZWFyAgAAAAMAAABnZXQDAAAAc2V0AFpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlpaWlo="
	assert.Equal(t, want, base64.StdEncoding.EncodeToString(raw))
}

func TestSign(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i + 7)
	}
	kp, err := keys.NewKeyPairFromSeed(seed)
	require.NoError(t, err)

	txn := fixedTransaction()
	txn.PublicKey = kp.PublicKey()

	st, id, err := txn.Sign(kp)
	require.NoError(t, err)

	digest, err := txn.Hash()
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(digest[:]), id)

	// The signature covers the digest, not the raw serialization.
	assert.True(t, keys.Verify(kp.PublicKey(), digest[:], st.Signature.Data[:]))
	assert.Equal(t, keys.KeyTypeED25519, st.Signature.KeyType)
}

// Constructors copy amounts: mutating the caller's big.Int afterwards must
// not change what gets signed.
func TestActionAmountsAreCopied(t *testing.T) {
	deposit := big.NewInt(1000)
	action := tx.NewTransfer(deposit)
	deposit.SetInt64(9999)

	assert.Equal(t, "1000", action.Transfer.Deposit.String())

	allowance := big.NewInt(500)
	key := tx.FunctionCallAccessKey("bob.near", nil, allowance)
	allowance.SetInt64(1)

	require.NotNil(t, key.Permission.FunctionCall.Allowance)
	assert.Equal(t, "500", key.Permission.FunctionCall.Allowance.String())
	assert.NotNil(t, key.Permission.FunctionCall.MethodNames, "nil method list must normalize to empty")

	// Full-access keys have no payload to copy but must carry the right tag.
	assert.Equal(t, tx.FullAccessKey(), tx.FullAccessKey())
}
