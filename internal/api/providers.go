package api

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/metrics"
	"github/chapool/go-near-tools/internal/near/account"
	"github/chapool/go-near-tools/internal/near/credentials"
	"github/chapool/go-near-tools/internal/near/keys"
	"github/chapool/go-near-tools/internal/near/rpc"
)

// PROVIDERS - referenced by wire.Build in wire.go, called by the generated
// injector in wire_gen.go.

// NewNodeClient returns the JSON-RPC client for the configured network.
// Explicitly configured node URLs win over the embedded network catalog.
func NewNodeClient(cfg config.Server, metrics *metrics.Service) (*rpc.Client, error) {
	urls := cfg.Near.NodeURLs

	if len(urls) == 0 {
		network, err := config.ResolveNetwork(cfg.Near.NetworkID)
		if err != nil {
			return nil, errors.Wrap(err, "no node URLs configured and network is not in the catalog")
		}
		urls = network.NodeURLs
	}

	client, err := rpc.NewClient(urls, cfg.Near.RequestTimeout)
	if err != nil {
		return nil, err
	}
	client.Observe(metrics.ObserveRPCCall)

	return client, nil
}

// NewSignerAccount resolves the signing identity. An inline private key wins
// over the credentials directory; with neither configured the server runs
// read-only and every transaction-submitting tool is rejected up front.
func NewSignerAccount(cfg config.Server, client *rpc.Client) (*account.Account, error) {
	near := cfg.Near

	if near.PrivateKey != "" {
		if near.AccountID == "" {
			return nil, errors.New("SERVER_NEAR_PRIVATE_KEY is set but SERVER_NEAR_ACCOUNT_ID is not")
		}

		kp, err := keys.ParseSecretKey(near.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse configured private key")
		}

		log.Info().Str("accountID", near.AccountID).Msg("Using signer key from environment")
		return account.New(near.AccountID, kp, client), nil
	}

	if near.AccountID != "" {
		file, err := credentials.LoadForAccount(near.CredentialsDir, near.NetworkID, near.AccountID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load credentials for %s", near.AccountID)
		}

		kp, err := file.KeyPair()
		if err != nil {
			return nil, errors.Wrapf(err, "credentials for %s are unusable", near.AccountID)
		}

		log.Info().Str("accountID", near.AccountID).Str("dir", near.CredentialsDir).Msg("Using signer key from credentials directory")
		return account.New(near.AccountID, kp, client), nil
	}

	log.Warn().Msg("No signer account configured, running in read-only mode")
	return account.NewReadOnly(client), nil
}
