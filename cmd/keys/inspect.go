package keys

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/near/credentials"
)

func newInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Validates a credentials file and prints its public half",
		Long: `Validates a plain or encrypted credentials file and prints the
account id and public key. Encrypted stores are opened after a password
prompt. The private key is never printed.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			runInspect(args[0])
		},
	}
}

func runInspect(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read credentials file")
	}

	// Encrypted stores carry a crypto section, plain files do not.
	var enc credentials.Encrypted
	if err := json.Unmarshal(raw, &enc); err == nil && enc.Crypto.Ciphertext != "" {
		inspectEncrypted(&enc)

		return
	}

	f, err := credentials.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load credentials file")
	}

	kp, err := f.KeyPair()
	if err != nil {
		log.Fatal().Err(err).Msg("Credentials file carries an invalid key")
	}

	fmt.Printf("Store:      plain\n")
	fmt.Printf("Account id: %s\n", f.AccountID)
	fmt.Printf("Public key: %s\n", kp.PublicKey().String())
}

func inspectEncrypted(enc *credentials.Encrypted) {
	password, err := promptPassword("Enter store password: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}

	f, err := enc.Decrypt(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decrypt credentials store")
	}

	fmt.Printf("Store:      encrypted (keystore v%d)\n", enc.Version)
	fmt.Printf("Account id: %s\n", f.AccountID)
	fmt.Printf("Public key: %s\n", f.PublicKey)
}
