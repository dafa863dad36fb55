package rpc_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/rpc"
)

// rpcHandler answers every request with the given result or error and
// records what arrived.
func rpcHandler(t *testing.T, result string, rpcErr string, lastReq *map[string]any) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		if lastReq != nil {
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(body, &decoded))
			*lastReq = decoded
		}

		w.Header().Set("Content-Type", "application/json")
		if rpcErr != "" {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":` + rpcErr + `}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}
}

func TestCallSendsNamedParamsAndDecodesResult(t *testing.T) {
	var lastReq map[string]any
	server := httptest.NewServer(rpcHandler(t, `{"amount":"42","block_height":100}`, "", &lastReq))
	defer server.Close()

	client, err := rpc.NewClient([]string{server.URL}, time.Second)
	require.NoError(t, err)

	view, err := client.ViewAccount(context.Background(), "alice.near")
	require.NoError(t, err)
	assert.Equal(t, "42", view.Amount)
	assert.Equal(t, uint64(100), view.BlockHeight)

	assert.Equal(t, "2.0", lastReq["jsonrpc"])
	assert.Equal(t, "query", lastReq["method"])

	params, ok := lastReq["params"].(map[string]any)
	require.True(t, ok, "query params must be a named object, not a positional array")
	assert.Equal(t, "view_account", params["request_type"])
	assert.Equal(t, "final", params["finality"])
	assert.Equal(t, "alice.near", params["account_id"])
}

func TestViewAccessKeyUsesOptimisticFinality(t *testing.T) {
	var lastReq map[string]any
	server := httptest.NewServer(rpcHandler(t, `{"nonce":7,"permission":"FullAccess","block_hash":"9abc"}`, "", &lastReq))
	defer server.Close()

	client, err := rpc.NewClient([]string{server.URL}, time.Second)
	require.NoError(t, err)

	view, err := client.ViewAccessKey(context.Background(), "alice.near", "ed25519:abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), view.Nonce)
	assert.Equal(t, "9abc", view.BlockHash)

	params := lastReq["params"].(map[string]any)
	assert.Equal(t, "view_access_key", params["request_type"])
	assert.Equal(t, "optimistic", params["finality"])
	assert.Equal(t, "ed25519:abc", params["public_key"])
}

func TestBroadcastUsesPositionalParams(t *testing.T) {
	var lastReq map[string]any
	server := httptest.NewServer(rpcHandler(t, `{"status":{"SuccessValue":""},"transaction":{"hash":"H1"}}`, "", &lastReq))
	defer server.Close()

	client, err := rpc.NewClient([]string{server.URL}, time.Second)
	require.NoError(t, err)

	outcome, err := client.BroadcastTxCommit(context.Background(), "c2lnbmVk")
	require.NoError(t, err)
	assert.Equal(t, "H1", outcome.Transaction.Hash)

	params, ok := lastReq["params"].([]any)
	require.True(t, ok, "broadcast params must be positional")
	assert.Equal(t, []any{"c2lnbmVk"}, params)
}

func TestGasPriceQueriesLatestBlock(t *testing.T) {
	var lastReq map[string]any
	server := httptest.NewServer(rpcHandler(t, `{"gas_price":"100000000"}`, "", &lastReq))
	defer server.Close()

	client, err := rpc.NewClient([]string{server.URL}, time.Second)
	require.NoError(t, err)

	price, err := client.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100000000", price.GasPrice)

	assert.Equal(t, "gas_price", lastReq["method"])
	params, ok := lastReq["params"].([]any)
	require.True(t, ok, "gas_price params must be positional")
	assert.Equal(t, []any{nil}, params)
}

func TestNodeErrorSurfacesTypedAndSkipsFailover(t *testing.T) {
	const nodeErr = `{"name":"HANDLER_ERROR","cause":{"name":"UNKNOWN_ACCOUNT","info":{"requested_account_id":"ghost.near"}},"code":-32000,"message":"account not found"}`

	var fallbackHits atomic.Int64
	primary := httptest.NewServer(rpcHandler(t, "", nodeErr, nil))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits.Add(1)
	}))
	defer fallback.Close()

	client, err := rpc.NewClient([]string{primary.URL, fallback.URL}, time.Second)
	require.NoError(t, err)

	_, err = client.ViewAccount(context.Background(), "ghost.near")
	require.Error(t, err)

	var rpcErr *rpc.Error
	require.True(t, errors.As(err, &rpcErr), "node errors must surface as *rpc.Error")
	assert.Equal(t, "HANDLER_ERROR", rpcErr.Name)
	assert.Equal(t, "UNKNOWN_ACCOUNT", rpcErr.CauseName())

	// The node answered; a second endpoint must never be consulted.
	assert.Equal(t, int64(0), fallbackHits.Load())
}

func TestTransportFailover(t *testing.T) {
	// A server that is immediately closed yields connection-refused.
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	var aliveHits atomic.Int64
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		aliveHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"chain_id":"testnet"}}`))
	}))
	defer alive.Close()

	client, err := rpc.NewClient([]string{deadURL, alive.URL}, time.Second)
	require.NoError(t, err)

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testnet", status.ChainID)

	// The walk settles on the healthy endpoint: the next call goes there
	// directly instead of re-probing the dead one.
	_, err = client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), aliveHits.Load())
}

func TestAllEndpointsDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	client, err := rpc.NewClient([]string{deadURL}, time.Second)
	require.NoError(t, err)

	_, err = client.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all RPC endpoints are unavailable")
}

func TestNewClientRequiresEndpoints(t *testing.T) {
	_, err := rpc.NewClient(nil, time.Second)
	require.Error(t, err)
}

func TestCallFunctionSurfacesEmbeddedError(t *testing.T) {
	server := httptest.NewServer(rpcHandler(t, `{"error":"wasm execution failed with error: MethodResolveError(MethodNotFound)","logs":[]}`, "", nil))
	defer server.Close()

	client, err := rpc.NewClient([]string{server.URL}, time.Second)
	require.NoError(t, err)

	_, err = client.CallFunction(context.Background(), "counter.near", "nope", "e30=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MethodNotFound")
}

func TestIntBytes(t *testing.T) {
	var b rpc.IntBytes
	require.NoError(t, json.Unmarshal([]byte(`[104,105]`), &b))
	assert.Equal(t, "hi", string(b))

	require.NoError(t, json.Unmarshal([]byte(`"aGk="`), &b))
	assert.Equal(t, "hi", string(b))

	assert.Error(t, json.Unmarshal([]byte(`[300]`), &b))
}
