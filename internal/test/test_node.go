package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNodeBlockHash is the block anchor every canned query answer carries,
// base58 of bytes 0x01..0x20.
const TestNodeBlockHash = "4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"

// TestNodeStatusResult is the canned "status" answer: a synced testnet node.
const TestNodeStatusResult = `{"chain_id":"testnet","version":{"version":"2.3.0","build":"test"},"sync_info":{"latest_block_hash":"` + TestNodeBlockHash + `","latest_block_height":128,"syncing":false}}`

// TestNode is a scripted stand-in for a ledger node. Query answers are keyed
// by request_type; broadcasts are captured and answered with a canned
// outcome. Unscripted requests fail the test, so every exchange a test
// triggers is declared in the test itself.
type TestNode struct {
	t      *testing.T
	server *httptest.Server

	mu         sync.Mutex
	queries    map[string]string
	outcome    string
	statusJSON string
	broadcasts []string
}

func NewTestNode(t *testing.T) *TestNode {
	t.Helper()

	n := &TestNode{
		t:          t,
		queries:    map[string]string{},
		statusJSON: TestNodeStatusResult,
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.handle))
	t.Cleanup(n.server.Close)

	return n
}

// URL returns the stub's endpoint for the node client config.
func (n *TestNode) URL() string {
	return n.server.URL
}

// Answer scripts the result JSON for one query request_type.
func (n *TestNode) Answer(requestType, result string) *TestNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queries[requestType] = result

	return n
}

// AnswerBroadcast scripts the full response body of broadcast_tx_commit.
func (n *TestNode) AnswerBroadcast(response string) *TestNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outcome = response

	return n
}

// AnswerStatus overrides the canned status result.
func (n *TestNode) AnswerStatus(result string) *TestNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusJSON = result

	return n
}

// Broadcasts returns the captured base64 broadcast payloads in order.
func (n *TestNode) Broadcasts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.broadcasts...)
}

func (n *TestNode) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(n.t, err)

	var req struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	require.NoError(n.t, json.Unmarshal(body, &req))

	n.mu.Lock()
	defer n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch req.Method {
	case "status":
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+n.statusJSON+`}`)
	case "query":
		var params struct {
			RequestType string `json:"request_type"`
		}
		require.NoError(n.t, json.Unmarshal(req.Params, &params))

		result, ok := n.queries[params.RequestType]
		require.True(n.t, ok, "unscripted query type %s", params.RequestType)
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+result+`}`)
	case "broadcast_tx_commit":
		var params []string
		require.NoError(n.t, json.Unmarshal(req.Params, &params))
		require.Len(n.t, params, 1)
		n.broadcasts = append(n.broadcasts, params[0])

		require.NotEmpty(n.t, n.outcome, "unscripted broadcast_tx_commit")
		_, _ = io.WriteString(w, n.outcome)
	default:
		n.t.Fatalf("unscripted RPC method %s", req.Method)
	}
}
