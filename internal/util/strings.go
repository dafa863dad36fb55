package util

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"
)

// Character sets for GenerateRandomString.
const (
	CharRangeNumeric      = "0123456789"
	CharRangeAlphaLower   = "abcdefghijklmnopqrstuvwxyz"
	CharRangeAlphaUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharRangeAlphaNumeric = CharRangeNumeric + CharRangeAlphaLower + CharRangeAlphaUpper
)

// GenerateRandomBytes returns n crypto/rand bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	return b, nil
}

// GenerateRandomHexString returns a hex string over n random bytes (thus
// twice as many characters).
func GenerateRandomHexString(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandomBase64String returns an URL-safe base64 string over n random
// bytes.
func GenerateRandomBase64String(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GenerateRandomString returns a string of the given length, drawing each
// character uniformly from the concatenated character ranges.
func GenerateRandomString(length int, charRanges ...string) (string, error) {
	charSet := ""
	for _, charRange := range charRanges {
		charSet += charRange
	}
	if len(charSet) == 0 {
		charSet = CharRangeAlphaNumeric
	}

	res := make([]byte, length)
	max := big.NewInt(int64(len(charSet)))

	for i := range res {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "failed to draw random index")
		}
		res[i] = charSet[idx.Int64()]
	}

	return string(res), nil
}
