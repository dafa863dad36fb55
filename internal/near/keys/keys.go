// Package keys implements the "<curve>:<base58-data>" key encoding used by
// tool payloads and credential files. Only ed25519 is supported; the curve
// tag is kept explicit because it is the first byte of the on-wire key.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/nearerr"
)

// KeyTypeED25519 is the wire tag for ed25519 keys.
const KeyTypeED25519 uint8 = 0

const ed25519Prefix = "ed25519"

// PublicKey is a curve-tagged public key. Field order matches the binary
// layout signed transactions carry, so the struct serializes as-is.
type PublicKey struct {
	KeyType uint8
	Data    [32]byte
}

// ParsePublicKey parses "ed25519:<base58>" or bare base58 (ed25519 implied).
func ParsePublicKey(s string) (PublicKey, error) {
	payload, err := splitKey(s)
	if err != nil {
		return PublicKey{}, err
	}

	raw, err := base58.Decode(payload)
	if err != nil {
		return PublicKey{}, nearerr.Wrap(nearerr.CategoryInvalidKey, err, "public key is not valid base58")
	}
	if len(raw) != ed25519.PublicKeySize {
		return PublicKey{}, nearerr.Newf(nearerr.CategoryInvalidKey, "public key must decode to %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}

	pk := PublicKey{KeyType: KeyTypeED25519}
	copy(pk.Data[:], raw)
	return pk, nil
}

func (pk PublicKey) String() string {
	return ed25519Prefix + ":" + base58.Encode(pk.Data[:])
}

// ED25519 returns the key in the form crypto/ed25519 consumes.
func (pk PublicKey) ED25519() ed25519.PublicKey {
	return ed25519.PublicKey(pk.Data[:])
}

// KeyPair holds an ed25519 signing key together with its public half.
type KeyPair struct {
	pub  PublicKey
	priv ed25519.PrivateKey
}

// GenerateKeyPair creates a fresh random key pair.
func GenerateKeyPair() (*KeyPair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate ed25519 key")
	}
	return fromPrivate(priv), nil
}

// NewKeyPairFromSeed derives a key pair from a 32-byte seed, e.g. the output
// of mnemonic derivation.
func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nearerr.Newf(nearerr.CategoryInvalidKey, "ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return fromPrivate(ed25519.NewKeyFromSeed(seed)), nil
}

// ParseSecretKey parses "ed25519:<base58>" secret material. Both the 64-byte
// expanded form found in credential files and the raw 32-byte seed form are
// accepted.
func ParseSecretKey(s string) (*KeyPair, error) {
	payload, err := splitKey(s)
	if err != nil {
		return nil, err
	}

	raw, err := base58.Decode(payload)
	if err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryInvalidKey, err, "secret key is not valid base58")
	}

	switch len(raw) {
	case ed25519.PrivateKeySize:
		return fromPrivate(ed25519.PrivateKey(raw)), nil
	case ed25519.SeedSize:
		return fromPrivate(ed25519.NewKeyFromSeed(raw)), nil
	default:
		return nil, nearerr.Newf(nearerr.CategoryInvalidKey, "secret key must decode to %d or %d bytes, got %d", ed25519.PrivateKeySize, ed25519.SeedSize, len(raw))
	}
}

func fromPrivate(priv ed25519.PrivateKey) *KeyPair {
	kp := &KeyPair{priv: priv, pub: PublicKey{KeyType: KeyTypeED25519}}
	copy(kp.pub.Data[:], priv.Public().(ed25519.PublicKey))
	return kp
}

// PublicKey returns the public half.
func (kp *KeyPair) PublicKey() PublicKey {
	return kp.pub
}

// SecretKey renders the expanded secret in credential-file form.
func (kp *KeyPair) SecretKey() string {
	return ed25519Prefix + ":" + base58.Encode(kp.priv)
}

// Sign signs msg (callers pass a transaction digest, not the raw payload).
func (kp *KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(kp.priv, msg)
}

// Verify reports whether sig is a valid signature of msg under pub.
func Verify(pub PublicKey, msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub.ED25519(), msg, sig)
}

// splitKey strips the optional curve prefix and rejects unsupported curves.
func splitKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nearerr.New(nearerr.CategoryInvalidKey, "empty key")
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return parts[0], nil
	}
	if !strings.EqualFold(parts[0], ed25519Prefix) {
		return "", nearerr.Newf(nearerr.CategoryInvalidKey, "unsupported key type %q, expected %q", parts[0], ed25519Prefix)
	}
	return parts[1], nil
}
