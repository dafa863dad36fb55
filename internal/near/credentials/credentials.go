// Package credentials loads and saves signing key material: the plain JSON
// credential files wallet tooling exchanges, and a password-encrypted store
// for keys that must not sit on disk in the clear.
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/keys"
)

// File is the plain credential file format: account id plus both key halves
// in "<curve>:<base58>" text form.
type File struct {
	AccountID  string `json:"account_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// Load reads and validates a credential file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read credentials file %s", path)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(err, "credentials file %s is not valid JSON", path)
	}
	if f.AccountID == "" || f.PrivateKey == "" {
		return nil, errors.Errorf("credentials file %s is missing account_id or private_key", path)
	}
	return &f, nil
}

// LoadForAccount resolves the conventional per-network layout
// <dir>/<network>/<account>.json.
func LoadForAccount(dir, network, accountID string) (*File, error) {
	return Load(filepath.Join(dir, network, accountID+".json"))
}

// Save writes the credential file with owner-only permissions, creating the
// directory chain as needed.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrapf(err, "failed to create credentials directory for %s", path)
	}

	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode credentials")
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write credentials file %s", path)
	}
	return nil
}

// KeyPair parses the private key into a signing pair, cross-checking the
// stored public key when present.
func (f *File) KeyPair() (*keys.KeyPair, error) {
	kp, err := keys.ParseSecretKey(f.PrivateKey)
	if err != nil {
		return nil, errors.Wrapf(err, "credentials for %s carry an invalid private key", f.AccountID)
	}

	if f.PublicKey != "" {
		stored, err := keys.ParsePublicKey(f.PublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "credentials for %s carry an invalid public key", f.AccountID)
		}
		if stored != kp.PublicKey() {
			return nil, errors.Errorf("credentials for %s are inconsistent: public key does not match the private key", f.AccountID)
		}
	}
	return kp, nil
}

// FromKeyPair builds a credential file for a freshly created key.
func FromKeyPair(accountID string, kp *keys.KeyPair) *File {
	return &File{
		AccountID:  accountID,
		PublicKey:  kp.PublicKey().String(),
		PrivateKey: kp.SecretKey(),
	}
}
