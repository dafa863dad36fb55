package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

// Encrypted is a password-protected credential in keystore v3 layout:
// scrypt-derived key, AES-128-CTR ciphertext, SHA-256 MAC over the second
// key half and the ciphertext.
//
//nolint:revive // the nested struct mirrors the on-disk JSON exactly
type Encrypted struct {
	Version   int    `json:"version"`
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Crypto    struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines the KDF cost parameters.
type ScryptParams struct {
	DKLen int
	N     int
	R     int
	P     int
}

// DefaultScryptParams matches the keystore v3 standard costs.
func DefaultScryptParams() ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // 2^18
		scryptR     = 8
		scryptP     = 1
	)

	return ScryptParams{DKLen: scryptDKLen, N: scryptN, R: scryptR, P: scryptP}
}

const storeVersion = 3

// Encrypt seals a credential file under a password.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Encrypt(f *File, password string, params ScryptParams) (*Encrypted, error) {
	//nolint:mnd // 32 is the standard salt size for scrypt
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	//nolint:mnd // 16 is the standard IV size for AES-128-CTR
	iv := make([]byte, 16)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	ciphertext, err := xorAES128CTR(derivedKey[:16], iv, []byte(f.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)

	enc := &Encrypted{
		Version:   storeVersion,
		ID:        uuid.New().String(),
		AccountID: f.AccountID,
	}
	enc.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	enc.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	enc.Crypto.Cipher = "aes-128-ctr"
	enc.Crypto.KDF = "scrypt"
	enc.Crypto.KDFParams.DKLen = params.DKLen
	enc.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	enc.Crypto.KDFParams.N = params.N
	enc.Crypto.KDFParams.R = params.R
	enc.Crypto.KDFParams.P = params.P
	enc.Crypto.MAC = hex.EncodeToString(mac)

	return enc, nil
}

// Decrypt opens the store and reconstructs the credential file, verifying
// the MAC before touching the ciphertext.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func (e *Encrypted) Decrypt(password string) (*File, error) {
	salt, err := hex.DecodeString(e.Crypto.KDFParams.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	iv, err := hex.DecodeString(e.Crypto.CipherParams.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode IV: %w", err)
	}
	ciphertext, err := hex.DecodeString(e.Crypto.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	expectedMAC, err := hex.DecodeString(e.Crypto.MAC)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MAC: %w", err)
	}

	derivedKey, err := scrypt.Key(
		[]byte(password),
		salt,
		e.Crypto.KDFParams.N,
		e.Crypto.KDFParams.R,
		e.Crypto.KDFParams.P,
		e.Crypto.KDFParams.DKLen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	mac := calculateMAC(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return nil, fmt.Errorf("invalid password: MAC mismatch")
	}

	plaintext, err := xorAES128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt private key: %w", err)
	}

	f := &File{AccountID: e.AccountID, PrivateKey: string(plaintext)}
	kp, err := f.KeyPair()
	if err != nil {
		return nil, err
	}
	f.PublicKey = kp.PublicKey().String()
	return f, nil
}

// xorAES128CTR runs the CTR keystream over data; encryption and decryption
// are the same operation.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func xorAES128CTR(key, iv, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)
	return out, nil
}

// calculateMAC authenticates the ciphertext with the second derived-key
// half: SHA-256(derivedKey[16:32] + ciphertext).
func calculateMAC(key, ciphertext []byte) []byte {
	hasher := sha256.New()
	hasher.Write(key)
	hasher.Write(ciphertext)
	return hasher.Sum(nil)
}
