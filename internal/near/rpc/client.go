// Package rpc is a JSON-RPC 2.0 client for ledger nodes with endpoint
// failover. Queries use the named-parameter form the node's query API
// expects; only transaction broadcast uses positional parameters.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	jsonRPCVersion = "2.0"
	contentType    = "application/json"

	// DefaultTimeout bounds a single HTTP exchange, not the whole failover
	// walk.
	DefaultTimeout = 30 * time.Second
)

// Client talks to one of several equivalent nodes. Endpoints are tried in
// order starting from the last one that worked; a node that answers — even
// with an error — is considered healthy and stops the walk.
type Client struct {
	endpoints []string
	http      *http.Client

	// observe is set once during initialization, before the client is shared.
	observe func(method string, err error)

	mu      sync.Mutex
	current int
	nextID  uint64
}

// NewClient builds a client over the given endpoint list.
func NewClient(endpoints []string, timeout time.Duration) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("at least one RPC endpoint is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// Endpoints returns the configured endpoint list.
func (c *Client) Endpoints() []string {
	return c.endpoints
}

// Observe registers a callback receiving every method call and its outcome,
// mainly for metrics. Must be called before the client is shared.
func (c *Client) Observe(fn func(method string, err error)) {
	c.observe = fn
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Call performs one JSON-RPC method call, decoding the result into out when
// out is non-nil. A node-side error comes back as *Error; transport errors
// trigger failover to the next endpoint and only surface once every endpoint
// has failed.
func (c *Client) Call(ctx context.Context, method string, params any, out any) error {
	err := c.call(ctx, method, params, out)
	if c.observe != nil {
		c.observe(method, err)
	}
	return err
}

func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	payload, err := json.Marshal(request{
		JSONRPC: jsonRPCVersion,
		ID:      c.next(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode RPC request")
	}

	start := c.currentIndex()

	var lastErr error
	for i := 0; i < len(c.endpoints); i++ {
		idx := (start + i) % len(c.endpoints)
		endpoint := c.endpoints[idx]

		raw, rpcErr, err := c.post(ctx, endpoint, payload)
		if err != nil {
			lastErr = err
			log.Warn().
				Str("endpoint", endpoint).
				Str("method", method).
				Err(err).
				Msg("RPC endpoint unreachable, trying next")

			if ctx.Err() != nil {
				break
			}
			continue
		}

		c.setCurrent(idx)

		if rpcErr != nil {
			return rpcErr
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrapf(err, "failed to decode %s result", method)
		}
		return nil
	}

	return errors.Wrap(lastErr, "all RPC endpoints are unavailable")
}

// post runs one HTTP exchange. The three-way return keeps node-side errors
// (second value) distinct from transport errors (third): only the latter
// justify failover.
func (c *Client) post(ctx context.Context, endpoint string, payload []byte) (json.RawMessage, *Error, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build RPC request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "RPC request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read RPC response")
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return nil, nil, errors.Errorf("RPC endpoint returned HTTP %d", res.StatusCode)
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, nil, errors.Wrapf(err, "RPC endpoint returned a non-JSON-RPC response (HTTP %d)", res.StatusCode)
	}
	if decoded.Error != nil {
		return nil, decoded.Error, nil
	}
	return decoded.Result, nil, nil
}

func (c *Client) next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

func (c *Client) currentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Client) setCurrent(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = idx
}
