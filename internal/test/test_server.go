package test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/api/router"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/near/keys"
)

// TestSignerAccountID is the account every test server signs with.
const TestSignerAccountID = "signer.testnet"

// TestMgmtSecret protects the management endpoints of test servers.
const TestMgmtSecret = "mgmtpass"

// TestSignerSeed returns the deterministic signer seed, bytes 0x01..0x20.
func TestSignerSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i + 1)
	}

	return seed
}

// TestSignerKeyPair returns the key pair every test server signs with.
func TestSignerKeyPair(t *testing.T) *keys.KeyPair {
	t.Helper()

	kp, err := keys.NewKeyPairFromSeed(TestSignerSeed())
	require.NoError(t, err)

	return kp
}

// DefaultTestServerConfig returns the regular server config adjusted for
// tests: quiet logger, deterministic signer, fixed management secret, node
// calls pointed at the given stub.
func DefaultTestServerConfig(t *testing.T, nodeURL string) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Echo.ListenAddress = ":0"
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Logger.Level = zerolog.ErrorLevel
	cfg.Logger.PrettyPrintConsole = false
	cfg.Near.NetworkID = "testnet"
	cfg.Near.NodeURLs = []string{nodeURL}
	cfg.Near.AccountID = TestSignerAccountID
	cfg.Near.PrivateKey = TestSignerKeyPair(t).SecretKey()
	cfg.Management.Secret = TestMgmtSecret
	cfg.Metrics.Enable = true

	return cfg
}

// WithTestServer runs closure against a fully initialized server backed by a
// scripted node stub. Tests that need to script node answers use
// WithTestServerAndNode instead.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerAndNode(t, func(s *api.Server, _ *TestNode) {
		closure(s)
	})
}

// WithTestServerAndNode runs closure with both the server and its node stub.
func WithTestServerAndNode(t *testing.T, closure func(s *api.Server, node *TestNode)) {
	t.Helper()

	node := NewTestNode(t)
	WithTestServerConfigurable(t, DefaultTestServerConfig(t, node.URL()), func(s *api.Server) {
		closure(s, node)
	})
}

// WithTestServerConfigurable runs closure against a server initialized from
// the given config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(cfg)
	require.NoError(t, err)

	router.Init(s)

	closure(s)
}
