package tools

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
	"github/chapool/go-near-tools/internal/near/keys"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
)

type verifySignatureArgs struct {
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

func (s *Service) verifySignatureDefinition() *Definition {
	return &Definition{
		Name:        "near_verify_signature",
		Description: "Verify an ed25519 signature over the SHA-256 hash of a message, the scheme standard ledger signers use. Runs locally without a node round trip.",
		InputSchema: objectSchema(map[string]interface{}{
			"public_key": stringProperty("Public key to check against, base58 with optional ed25519: prefix."),
			"message":    stringProperty("The signed message, verbatim."),
			"signature":  stringProperty("Base58-encoded 64-byte signature."),
		}, "message", "public_key", "signature"),
		run: s.verifySignature,
	}
}

func (s *Service) verifySignature(_ context.Context, raw json.RawMessage) (string, error) {
	callCtx := outcome.Context{Operation: "signature verification"}

	var args verifySignatureArgs
	if err := decodeArgs(raw, &args); err != nil {
		return "", outcome.Classify(err, callCtx)
	}
	callCtx.PublicKey = args.PublicKey

	publicKey, err := keys.ParsePublicKey(args.PublicKey)
	if err != nil {
		return "", outcome.Classify(err, callCtx)
	}

	signature, err := base58.Decode(args.Signature)
	if err != nil {
		return "", outcome.Classify(nearerr.Wrap(nearerr.CategoryInvalidKey, err, "signature is not valid base58"), callCtx)
	}

	digest := sha256.Sum256([]byte(args.Message))
	if keys.Verify(publicKey, digest[:], signature) {
		return fmt.Sprintf("signature is valid for key %s", publicKey.String()), nil
	}

	return fmt.Sprintf("signature is NOT valid for key %s", publicKey.String()), nil
}
