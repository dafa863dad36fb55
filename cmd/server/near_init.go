package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/near/units"
)

const startupProbeTimeout = 10 * time.Second

// logNodeStatus probes the configured node once at startup. Purely
// informational: a dead node does not prevent startup, tools report node
// errors per call.
func logNodeStatus(ctx context.Context, s *api.Server) {
	status, err := s.Node.Status(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Node is not reachable, tools will fail until it is")
		return
	}

	log.Info().
		Str("chain_id", status.ChainID).
		Str("node_version", status.Version.Version).
		Uint64("latest_block", status.SyncInfo.LatestBlockHeight).
		Bool("syncing", status.SyncInfo.Syncing).
		Msg("Connected to node")

	if status.ChainID != s.Config.Near.NetworkID {
		log.Warn().
			Str("configured", s.Config.Near.NetworkID).
			Str("reported", status.ChainID).
			Msg("Node chain id does not match the configured network")
	}

	if !s.Signer.CanSign() {
		log.Warn().Msg("No signer account configured, transaction-submitting tools are disabled")
		return
	}

	balance, err := s.Signer.Balance(ctx)
	if err != nil {
		log.Warn().Err(err).Str("account_id", s.Signer.ID()).Msg("Failed to fetch signer balance")
		return
	}

	log.Info().
		Str("account_id", s.Signer.ID()).
		Str("balance_near", units.FormatNear(balance.Amount, units.DefaultFracDigits)).
		Msg("Signer account ready")
}
