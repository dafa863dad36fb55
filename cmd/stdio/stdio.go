package stdio

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/stdio"
	"github/chapool/go-near-tools/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serves the tools over line-delimited JSON-RPC on stdin/stdout",
		Long: `Serves the tool registry over line-delimited JSON-RPC 2.0 on
stdin/stdout, for agent frontends that spawn the server as a child
process. Runs until stdin closes.`,
		Run: func(_ *cobra.Command, _ []string) {
			runStdio()
		},
	}
}

func runStdio() {
	cfg := config.DefaultServiceConfigFromEnv()

	// stdout carries protocol lines, logs must stay on stderr
	cfg.Logger.PrettyPrintConsole = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		return stdio.NewServer(s.Tools, os.Stdin, os.Stdout).Run(ctx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to serve on stdio")
	}
}
