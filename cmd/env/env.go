package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/config"
	"gopkg.in/yaml.v3"
)

const formatFlag string = "format"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Prints the effective server config",
		Long: `Prints the server config as resolved from the environment and an
optional .env file. Secret values (private key, management secret) are
never part of the output.`,
		Run: func(cmd *cobra.Command, _ []string) {
			format, err := cmd.Flags().GetString(formatFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read format flag")
			}

			runEnv(format)
		},
	}

	cmd.Flags().StringP(formatFlag, "f", "json", "Output format, json or yaml.")

	return cmd
}

func runEnv(format string) {
	cfg := config.DefaultServiceConfigFromEnv()

	// Through JSON first in either case, the json tags strip the secrets.
	buf, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to serialize config")
	}

	switch format {
	case "json":
		fmt.Println(string(buf))
	case "yaml":
		var plain map[string]interface{}
		if err := json.Unmarshal(buf, &plain); err != nil {
			log.Fatal().Err(err).Msg("Failed to deserialize config")
		}

		out, err := yaml.Marshal(plain)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to serialize config as yaml")
		}

		fmt.Print(string(out))
	default:
		log.Fatal().Str("format", format).Msg("Unsupported output format, use json or yaml")
	}
}
