package stdio_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/metrics"
	"github/chapool/go-near-tools/internal/near/account"
	"github/chapool/go-near-tools/internal/near/rpc"
	"github/chapool/go-near-tools/internal/stdio"
	"github/chapool/go-near-tools/internal/test"
	"github/chapool/go-near-tools/internal/tools"
	"github/chapool/go-near-tools/internal/types"
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// serve feeds the given lines through a server backed by a node stub and
// returns the response lines keyed by request id. Responses arrive in
// whatever order the concurrent dispatch finishes, hence the map.
func serve(t *testing.T, withSigner bool, lines ...string) map[string]rpcResponse {
	t.Helper()

	node := test.NewTestNode(t)

	client, err := rpc.NewClient([]string{node.URL()}, time.Second)
	require.NoError(t, err)

	acct := account.NewReadOnly(client)
	if withSigner {
		acct = account.New(test.TestSignerAccountID, test.TestSignerKeyPair(t), client)
	}

	cfg := config.Server{Near: config.NearServer{NetworkID: "testnet"}}
	svc := tools.NewService(cfg, client, acct, metrics.New())

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	require.NoError(t, stdio.NewServer(svc, in, &out).Run(context.Background()))

	responses := map[string]rpcResponse{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}

		var res rpcResponse
		require.NoError(t, json.Unmarshal([]byte(line), &res), "line=%s", line)
		require.Equal(t, "2.0", res.JSONRPC)
		responses[string(res.ID)] = res
	}

	return responses
}

func TestInitializeHandshake(t *testing.T) {
	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"probe","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	)

	require.Len(t, responses, 1, "the initialized notification must get no response")

	res, ok := responses["1"]
	require.True(t, ok)
	require.Nil(t, res.Error)

	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
		Capabilities    struct {
			Tools *struct {
				ListChanged bool `json:"listChanged"`
			} `json:"tools"`
		} `json:"capabilities"`
		ServerInfo struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(res.Result, &result))
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	require.NotNil(t, result.Capabilities.Tools, "tool support must be announced")
	assert.Equal(t, config.ModuleName, result.ServerInfo.Name)
}

func TestToolsList(t *testing.T) {
	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":7,"method":"tools/list"}`,
	)

	res, ok := responses["7"]
	require.True(t, ok)
	require.Nil(t, res.Error)

	var result types.PublicToolListResponse
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.Len(t, result.Tools, 15)

	names := make([]string, 0, len(result.Tools))
	for _, info := range result.Tools {
		names = append(names, *info.Name)
	}
	assert.Contains(t, names, "near_transfer")
	assert.Contains(t, names, "near_verify_signature")
}

func TestToolsCallRunsLocally(t *testing.T) {
	kp := test.TestSignerKeyPair(t)
	digest := sha256.Sum256([]byte("hello"))

	args := fmt.Sprintf(`{"message":"hello","public_key":"%s","signature":"%s"}`,
		kp.PublicKey().String(), base58.Encode(kp.Sign(digest[:])))

	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"near_verify_signature","arguments":`+args+`}}`,
	)

	res, ok := responses["3"]
	require.True(t, ok)
	require.Nil(t, res.Error)

	var result types.PublicToolResult
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, *result.Content[0].Text, "valid")
}

func TestToolsCallUnknownTool(t *testing.T) {
	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"near_frobnicate","arguments":{}}}`,
	)

	res, ok := responses["4"]
	require.True(t, ok)
	require.NotNil(t, res.Error)
	assert.Equal(t, -32602, res.Error.Code)
	assert.Contains(t, res.Error.Message, "near_frobnicate")
}

func TestToolsCallWithoutSignerStaysInBand(t *testing.T) {
	responses := serve(t, false,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"near_transfer","arguments":{"receiver_id":"bob.testnet","amount":"1"}}}`,
	)

	res, ok := responses["5"]
	require.True(t, ok)
	require.Nil(t, res.Error, "a missing signer is a tool result, not a protocol error")

	var result types.PublicToolResult
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.True(t, result.IsError)
	assert.Contains(t, *result.Content[0].Text, "read-only")
}

func TestUnknownMethod(t *testing.T) {
	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":6,"method":"resources/list"}`,
	)

	res, ok := responses["6"]
	require.True(t, ok)
	require.NotNil(t, res.Error)
	assert.Equal(t, -32601, res.Error.Code)
}

func TestParseErrorAnswersWithNullID(t *testing.T) {
	responses := serve(t, true,
		`{this is not JSON`,
	)

	res, ok := responses["null"]
	require.True(t, ok)
	require.NotNil(t, res.Error)
	assert.Equal(t, -32700, res.Error.Code)
}

func TestPing(t *testing.T) {
	responses := serve(t, true,
		`{"jsonrpc":"2.0","id":9,"method":"ping"}`,
	)

	res, ok := responses["9"]
	require.True(t, ok)
	require.Nil(t, res.Error)
	assert.JSONEq(t, `{}`, string(res.Result))
}

func TestConcurrentCallsAllAnswered(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"ping"}`, i+100))
	}

	responses := serve(t, true, lines...)
	require.Len(t, responses, 20)

	for i := 0; i < 20; i++ {
		res, ok := responses[fmt.Sprintf("%d", i+100)]
		require.True(t, ok, "id %d", i+100)
		require.Nil(t, res.Error)
	}
}
