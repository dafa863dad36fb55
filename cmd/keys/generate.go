package keys

import (
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/near/credentials"
	"github/chapool/go-near-tools/internal/near/seed"
)

const (
	accountIDFlag      = "account-id"
	derivationPathFlag = "derivation-path"
	saveFlag           = "save"
)

func newGenerate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a fresh mnemonic and signing key",
		Long: `Generates a fresh 12-word mnemonic and derives its signing key.
Prints the mnemonic and both key halves; with --save the credentials
file is written into the configured credentials directory using the
conventional <dir>/<network>/<account>.json layout.`,
		Run: func(cmd *cobra.Command, _ []string) {
			accountID, err := cmd.Flags().GetString(accountIDFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read account-id flag")
			}
			derivationPath, err := cmd.Flags().GetString(derivationPathFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read derivation-path flag")
			}
			save, err := cmd.Flags().GetBool(saveFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read save flag")
			}

			runGenerate(accountID, derivationPath, save)
		},
	}

	cmd.Flags().String(accountIDFlag, "", "Account id for the credentials file. Defaults to the implicit account id of the new key.")
	cmd.Flags().String(derivationPathFlag, seed.DefaultPath, "Hardened derivation path for the signing key.")
	cmd.Flags().Bool(saveFlag, false, "Write a credentials file into the configured credentials directory.")

	return cmd
}

func runGenerate(accountID, derivationPath string, save bool) {
	mnemonic, err := seed.GenerateMnemonic()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate mnemonic")
	}

	kp, err := seed.KeyPairFromMnemonicPath(mnemonic, "", derivationPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to derive signing key")
	}

	if accountID == "" {
		// Implicit account id, the hex form of the public key bytes.
		pk := kp.PublicKey()
		accountID = hex.EncodeToString(pk.Data[:])
	}

	fmt.Printf("Mnemonic:    %s\n", mnemonic)
	fmt.Printf("Account id:  %s\n", accountID)
	fmt.Printf("Public key:  %s\n", kp.PublicKey().String())
	fmt.Printf("Private key: %s\n", kp.SecretKey())

	if save {
		cfg := config.DefaultServiceConfigFromEnv()

		target := filepath.Join(cfg.Near.CredentialsDir, cfg.Near.NetworkID, accountID+".json")
		if err := credentials.FromKeyPair(accountID, kp).Save(target); err != nil {
			log.Fatal().Err(err).Msg("Failed to save credentials file")
		}

		fmt.Printf("Saved:       %s\n", target)
	}
}
