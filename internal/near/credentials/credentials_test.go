package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/credentials"
	"github/chapool/go-near-tools/internal/near/keys"
)

// light scrypt costs keep the test fast; production uses DefaultScryptParams.
func testScryptParams() credentials.ScryptParams {
	return credentials.ScryptParams{DKLen: 32, N: 1 << 12, R: 8, P: 1}
}

func TestFileRoundTrip(t *testing.T) {
	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "testnet", "alice.testnet.json")

	file := credentials.FromKeyPair("alice.testnet", kp)
	require.NoError(t, file.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := credentials.LoadForAccount(dir, "testnet", "alice.testnet")
	require.NoError(t, err)
	assert.Equal(t, "alice.testnet", loaded.AccountID)

	restored, err := loaded.KeyPair()
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), restored.PublicKey())
}

func TestLoadRejectsBrokenFiles(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"account_id":"x"}`), 0o600))
	_, err := credentials.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing account_id or private_key")

	_, err = credentials.Load(filepath.Join(dir, "nope.json"))
	require.Error(t, err)
}

func TestKeyPairDetectsMismatchedPublicKey(t *testing.T) {
	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	other, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	file := credentials.FromKeyPair("alice.testnet", kp)
	file.PublicKey = other.PublicKey().String()

	_, err = file.KeyPair()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public key does not match")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	file := credentials.FromKeyPair("alice.testnet", kp)

	enc, err := credentials.Encrypt(file, "hunter2", testScryptParams())
	require.NoError(t, err)
	assert.Equal(t, 3, enc.Version)
	assert.NotEmpty(t, enc.ID)
	assert.Equal(t, "aes-128-ctr", enc.Crypto.Cipher)
	assert.NotContains(t, enc.Crypto.Ciphertext, file.PrivateKey)

	decrypted, err := enc.Decrypt("hunter2")
	require.NoError(t, err)
	assert.Equal(t, file.PrivateKey, decrypted.PrivateKey)
	assert.Equal(t, file.PublicKey, decrypted.PublicKey)
	assert.Equal(t, "alice.testnet", decrypted.AccountID)
}

func TestDecryptRejectsWrongPassword(t *testing.T) {
	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	enc, err := credentials.Encrypt(credentials.FromKeyPair("a.testnet", kp), "correct", testScryptParams())
	require.NoError(t, err)

	_, err = enc.Decrypt("wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAC mismatch")
}

func TestEncryptUsesFreshSaltAndIV(t *testing.T) {
	kp, err := keys.GenerateKeyPair()
	require.NoError(t, err)
	file := credentials.FromKeyPair("a.testnet", kp)

	first, err := credentials.Encrypt(file, "pw", testScryptParams())
	require.NoError(t, err)
	second, err := credentials.Encrypt(file, "pw", testScryptParams())
	require.NoError(t, err)

	assert.NotEqual(t, first.Crypto.KDFParams.Salt, second.Crypto.KDFParams.Salt)
	assert.NotEqual(t, first.Crypto.CipherParams.IV, second.Crypto.CipherParams.IV)
	assert.NotEqual(t, first.ID, second.ID)
}
