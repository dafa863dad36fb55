// Package seed derives signing keys from BIP-39 mnemonics using the
// hardened-only ed25519 derivation scheme (SLIP-0010). The ledger's standard
// wallet path is m/44'/397'/0'; additional accounts hang hardened segments
// off it.
package seed

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	bip39 "github.com/tyler-smith/go-bip39"
	"github/chapool/go-near-tools/internal/near/keys"
)

// DefaultPath is the standard wallet derivation path.
const DefaultPath = "m/44'/397'/0'"

const (
	masterKey    = "ed25519 seed"
	hardenedBit  = uint32(0x80000000)
	entropyBits  = 128 // 12 words
	privSeedSize = 32
)

// GenerateMnemonic returns a fresh 12-word mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to build mnemonic")
	}
	return mnemonic, nil
}

// KeyPairFromMnemonic derives the signing key at DefaultPath.
func KeyPairFromMnemonic(mnemonic, passphrase string) (*keys.KeyPair, error) {
	return KeyPairFromMnemonicPath(mnemonic, passphrase, DefaultPath)
}

// KeyPairFromMnemonicPath derives the signing key at an explicit path.
func KeyPairFromMnemonicPath(mnemonic, passphrase, path string) (*keys.KeyPair, error) {
	masterSeed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(mnemonic), passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}

	privSeed, err := DerivePrivateSeed(masterSeed, path)
	if err != nil {
		return nil, err
	}
	return keys.NewKeyPairFromSeed(privSeed)
}

// DerivePrivateSeed walks the hardened path over the master seed and returns
// the 32-byte ed25519 private seed at its end.
func DerivePrivateSeed(masterSeed []byte, path string) ([]byte, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	key, chainCode := master(masterSeed)
	for _, index := range segments {
		key, chainCode = childKey(key, chainCode, index)
	}
	return key, nil
}

// ParsePath parses "m/44'/397'/0'" into hardened indices. ed25519 supports
// only hardened derivation, so every segment must carry the apostrophe.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, errors.Errorf("invalid derivation path %q: must start with m/", path)
	}

	segments := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if !strings.HasSuffix(part, "'") {
			return nil, errors.Errorf("invalid derivation path %q: segment %q is not hardened", path, part)
		}
		index, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 32)
		if err != nil || index >= uint64(hardenedBit) {
			return nil, errors.Errorf("invalid derivation path %q: bad segment %q", path, part)
		}
		segments = append(segments, uint32(index)|hardenedBit)
	}
	return segments, nil
}

func master(seed []byte) (key, chainCode []byte) {
	mac := hmac.New(sha512.New, []byte(masterKey))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:privSeedSize], sum[privSeedSize:]
}

func childKey(parentKey, parentChainCode []byte, index uint32) (key, chainCode []byte) {
	var indexBytes [4]byte
	binary.BigEndian.PutUint32(indexBytes[:], index)

	mac := hmac.New(sha512.New, parentChainCode)
	mac.Write([]byte{0x00})
	mac.Write(parentKey)
	mac.Write(indexBytes[:])
	sum := mac.Sum(nil)
	return sum[:privSeedSize], sum[privSeedSize:]
}
