// Package stdio serves the tool registry over line-delimited JSON-RPC 2.0 on
// a stream pair, the transport agent frontends use when they spawn the server
// as a child process. One request per line, one response per line;
// notifications get no response. Requests are dispatched concurrently and
// response writes are serialized, so slow tool calls never block the read
// loop.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/go-openapi/swag"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/near/account"
	"github/chapool/go-near-tools/internal/tools"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

const jsonRPCVersion = "2.0"

// protocolVersion is the tool protocol revision this server implements.
const protocolVersion = "2024-11-05"

// maxLineBytes caps a single request line. Contract bytecode travels base64
// inside tool arguments, so the cap sits well above the ledger's transaction
// size limit.
const maxLineBytes = 16 << 20

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

var nullID = json.RawMessage("null")

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools toolCapabilities `json:"tools"`
}

type toolCapabilities struct {
	ListChanged bool `json:"listChanged"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Server reads requests from in and writes responses to out. Logging goes to
// the context logger, never to out: out carries protocol lines only.
type Server struct {
	tools *tools.Service

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes response lines
}

func NewServer(toolsService *tools.Service, in io.Reader, out io.Writer) *Server {
	return &Server{
		tools: toolsService,
		in:    in,
		out:   out,
	}
}

// Run serves until the input stream closes or fails, then waits for in-flight
// calls to finish. The context is handed to every tool invocation, so
// canceling it aborts their node exchanges.
func (s *Server) Run(ctx context.Context) error {
	log := util.LogFromContext(ctx)
	log.Info().Int("tools", len(s.tools.Definitions())).Msg("Serving tools on stdio")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		// The scanner reuses its buffer across lines.
		owned := make([]byte, len(line))
		copy(owned, line)

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.dispatch(ctx, owned)
		}()
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading request stream")
	}

	log.Info().Msg("Request stream closed, shutting down")

	return nil
}

func (s *Server) dispatch(ctx context.Context, line []byte) {
	log := util.LogFromContext(ctx).With().Str("request_id", uuid.New().String()).Logger()
	ctx = log.WithContext(ctx)

	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		log.Debug().Err(err).Msg("Failed to parse request line")
		s.reply(ctx, nullID, nil, &rpcError{Code: codeParseError, Message: "parse error"})

		return
	}

	// Notifications are fire and forget, whatever the method.
	if isNotification(req.ID) {
		log.Debug().Str("method", req.Method).Msg("Ignoring notification")

		return
	}

	if req.Method == "" {
		s.reply(ctx, req.ID, nil, &rpcError{Code: codeInvalidRequest, Message: "request is missing the method field"})

		return
	}

	result, rpcErr := s.handle(ctx, &req)
	s.reply(ctx, req.ID, result, rpcErr)
}

func (s *Server) handle(ctx context.Context, req *request) (interface{}, *rpcError) {
	switch req.Method {
	case "initialize":
		return initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    capabilities{Tools: toolCapabilities{ListChanged: false}},
			ServerInfo: serverInfo{
				Name:    config.ModuleName,
				Version: config.Commit,
			},
		}, nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return s.listResult(), nil
	case "tools/call":
		return s.callResult(ctx, req.Params)
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q is not supported", req.Method)}
	}
}

func (s *Server) listResult() *types.PublicToolListResponse {
	defs := s.tools.Definitions()

	infos := make([]*types.PublicToolInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, &types.PublicToolInfo{
			Name:        swag.String(def.Name),
			Description: swag.String(def.Description),
			InputSchema: def.InputSchema,
		})
	}

	return &types.PublicToolListResponse{Tools: infos}
}

func (s *Server) callResult(ctx context.Context, raw json.RawMessage) (interface{}, *rpcError) {
	log := util.LogFromContext(ctx)

	var params callParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "tools/call params must carry a tool name and an arguments object"}
	}

	result, err := s.tools.Invoke(ctx, params.Name, params.Arguments)
	if err != nil {
		switch {
		case errors.Is(err, tools.ErrUnknownTool):
			log.Debug().Str("tool", params.Name).Msg("Unknown tool requested")
			return nil, &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf("no tool is registered under %q", params.Name)}
		case errors.Is(err, account.ErrNoSigner):
			// Kept in-band: agents read tool results, a transport-level
			// error would look like an outage instead of a capability gap.
			log.Debug().Str("tool", params.Name).Msg("Rejecting mutating tool, no signer configured")
			return readOnlyResult(params.Name), nil
		default:
			log.Debug().Err(err).Str("tool", params.Name).Msg("Failed to invoke tool")
			return nil, &rpcError{Code: codeInternalError, Message: "internal error", Data: err.Error()}
		}
	}

	return result, nil
}

func (s *Server) reply(ctx context.Context, id json.RawMessage, result interface{}, rpcErr *rpcError) {
	if len(id) == 0 {
		id = nullID
	}

	res := response{JSONRPC: jsonRPCVersion, ID: id}
	if rpcErr != nil {
		res.Error = rpcErr
	} else {
		res.Result = result
	}

	payload, err := json.Marshal(res)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Msg("Failed to marshal response")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.out.Write(append(payload, '\n')); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Msg("Failed to write response line")
	}
}

// isNotification treats both an absent and an explicit null id as
// fire-and-forget, matching how tool frontends emit notifications.
func isNotification(id json.RawMessage) bool {
	return len(id) == 0 || bytes.Equal(id, nullID)
}

func readOnlyResult(name string) *types.PublicToolResult {
	return &types.PublicToolResult{
		IsError: true,
		Content: []*types.PublicToolResultContent{
			{
				Type: swag.String("text"),
				Text: swag.String(fmt.Sprintf("%s submits transactions and requires a configured signer account, the server is running read-only", name)),
			},
		},
	}
}
