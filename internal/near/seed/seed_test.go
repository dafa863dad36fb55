package seed_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bip39 "github.com/tyler-smith/go-bip39"
	"github/chapool/go-near-tools/internal/near/seed"
)

// Published SLIP-0010 ed25519 vectors, seed 000102030405060708090a0b0c0d0e0f.
func TestDerivePrivateSeedVectors(t *testing.T) {
	masterSeed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"m/0'", "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3"},
		{"m/0'/1'", "b1d0bad404bf35da785a64ca1ac54b2617211d2777696fbffaf208f746ae84f2"},
		{"m/0'/1'/2'", "92a5b23c0b8a99e37d07df3fb9966917f5d06e02ddbd909c7e184371463e9fc9"},
	}

	for _, tt := range tests {
		got, err := seed.DerivePrivateSeed(masterSeed, tt.path)
		require.NoError(t, err, "path=%s", tt.path)
		assert.Equal(t, tt.want, hex.EncodeToString(got), "path=%s", tt.path)
	}
}

func TestParsePath(t *testing.T) {
	segments, err := seed.ParsePath(seed.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, []uint32{44 | 0x80000000, 397 | 0x80000000, 0 | 0x80000000}, segments)

	for _, path := range []string{
		"",
		"m",
		"44'/397'/0'",
		"m/44/397'/0'", // non-hardened segment
		"m/44'/x'",
		"m/2147483648'", // index overflows the hardened bit
	} {
		_, err := seed.ParsePath(path)
		assert.Error(t, err, "path=%q", path)
	}
}

func TestKeyPairFromMnemonic(t *testing.T) {
	// Standard all-zero-entropy test mnemonic.
	const mnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	a, err := seed.KeyPairFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	b, err := seed.KeyPairFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, a.PublicKey(), b.PublicKey(), "derivation must be deterministic")

	// Surrounding whitespace is tolerated.
	c, err := seed.KeyPairFromMnemonic("  "+mnemonic+"\n", "")
	require.NoError(t, err)
	assert.Equal(t, a.PublicKey(), c.PublicKey())

	// A passphrase and a different path each change the key.
	d, err := seed.KeyPairFromMnemonic(mnemonic, "hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey(), d.PublicKey())

	e, err := seed.KeyPairFromMnemonicPath(mnemonic, "", "m/44'/397'/0'/0'/1'")
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey(), e.PublicKey())

	_, err = seed.KeyPairFromMnemonic("definitely not a valid mnemonic phrase", "")
	require.Error(t, err)
}

func TestGenerateMnemonic(t *testing.T) {
	first, err := seed.GenerateMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(first), 12)
	assert.True(t, bip39.IsMnemonicValid(first))

	second, err := seed.GenerateMnemonic()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
