package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/near/credentials"
)

const outFlag = "out"

const minPasswordLength = 8

func newEncrypt() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <file>",
		Short: "Encrypts a plain credentials file into a password-protected store",
		Long: `Encrypts a plain credentials file into a password-protected store in
keystore v3 layout. The plain file is left untouched.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := cmd.Flags().GetString(outFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read out flag")
			}

			runEncrypt(args[0], out)
		},
	}

	cmd.Flags().String(outFlag, "", "Target path for the encrypted store. Defaults to <file> with a .keystore.json suffix.")

	return cmd
}

func runEncrypt(path, out string) {
	f, err := credentials.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load credentials file")
	}

	if _, err := f.KeyPair(); err != nil {
		log.Fatal().Err(err).Msg("Credentials file carries an invalid key")
	}

	password, err := promptPassword(fmt.Sprintf("Enter store password (min %d characters): ", minPasswordLength))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}
	if len(password) < minPasswordLength {
		log.Fatal().Msgf("Password must be at least %d characters", minPasswordLength)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password confirmation")
	}
	if password != confirm {
		log.Fatal().Msg("Passwords do not match")
	}

	enc, err := credentials.Encrypt(f, password, credentials.DefaultScryptParams())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encrypt credentials")
	}

	raw, err := json.MarshalIndent(enc, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode encrypted store")
	}

	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".keystore.json"
	}
	if err := os.WriteFile(out, raw, 0o600); err != nil {
		log.Fatal().Err(err).Msg("Failed to write encrypted store")
	}

	fmt.Printf("Encrypted store written to %s\n", out)
}
