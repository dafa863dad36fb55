// Package tools exposes the server's capabilities as named, schema-described
// tools. Every tool renders its outcome as display-ready text: successes
// carry formatted amounts and transaction ids, failures carry the classified
// error message. Callers never see raw node responses.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/swag"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/metrics"
	"github/chapool/go-near-tools/internal/near/account"
	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
	"github/chapool/go-near-tools/internal/near/rpc"
	"github/chapool/go-near-tools/internal/near/units"
	"github/chapool/go-near-tools/internal/types"
	"github/chapool/go-near-tools/internal/util"
)

// ErrUnknownTool is returned when no tool is registered under the requested
// name. It is a protocol-level error, not a tool result.
var ErrUnknownTool = errors.New("unknown tool")

// Definition describes one registered tool.
type Definition struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	// Mutating tools submit transactions and require a configured signer.
	Mutating bool

	run func(ctx context.Context, args json.RawMessage) (string, error)
}

// Service holds the registered tools and the dependencies they run against.
type Service struct {
	networkID string
	explorer  string
	node      *rpc.Client
	signer    *account.Account
	metrics   *metrics.Service

	defs   []*Definition
	byName map[string]*Definition
}

func NewService(cfg config.Server, node *rpc.Client, signer *account.Account, metricsService *metrics.Service) *Service {
	s := &Service{
		networkID: cfg.Near.NetworkID,
		node:      node,
		signer:    signer,
		metrics:   metricsService,
	}

	// The explorer link is cosmetic; a network id missing from the catalog
	// (custom node URLs) just leaves results without links.
	if network, err := config.ResolveNetwork(cfg.Near.NetworkID); err == nil {
		s.explorer = network.ExplorerURL
	}

	s.register()

	return s
}

// Definitions lists all tools in registration order.
func (s *Service) Definitions() []*Definition {
	return s.defs
}

// Lookup resolves a tool by name.
func (s *Service) Lookup(name string) (*Definition, bool) {
	def, ok := s.byName[name]
	return def, ok
}

// Invoke runs the named tool. Tool-level failures come back as a result with
// IsError set; the error return is reserved for protocol-level conditions
// (unknown tool, missing signer).
func (s *Service) Invoke(ctx context.Context, name string, args json.RawMessage) (*types.PublicToolResult, error) {
	def, ok := s.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTool, "%q", name)
	}

	if def.Mutating && !s.signer.CanSign() {
		return nil, account.ErrNoSigner
	}

	start := time.Now()
	text, err := def.run(ctx, args)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveToolInvocation(name, err != nil, elapsed)
	}

	logger := util.LogFromContext(ctx)

	if err != nil {
		logger.Info().Str("tool", name).Dur("duration", elapsed).Err(err).Msg("Tool invocation failed")
		return errorResult(err), nil
	}

	logger.Debug().Str("tool", name).Dur("duration", elapsed).Msg("Tool invocation succeeded")

	return textResult(text), nil
}

func (s *Service) register() {
	s.defs = []*Definition{
		s.runBatchDefinition(),
		s.transferDefinition(),
		s.callFunctionDefinition(),
		s.viewFunctionDefinition(),
		s.deployContractDefinition(),
		s.createAccountDefinition(),
		s.deleteAccountDefinition(),
		s.addKeyDefinition(),
		s.deleteKeyDefinition(),
		s.listKeysDefinition(),
		s.stakeDefinition(),
		s.getBalanceDefinition(),
		s.viewAccountDefinition(),
		s.viewStateDefinition(),
		s.verifySignatureDefinition(),
	}

	s.byName = make(map[string]*Definition, len(s.defs))
	for _, def := range s.defs {
		s.byName[def.Name] = def
	}
}

// submit is the shared submission pipeline: translate the abstract actions,
// sign and broadcast them as one atomic batch, then normalize the outcome
// into display text or a classified error.
func (s *Service) submit(ctx context.Context, receiverID string, specs []action.Spec, callCtx outcome.Context) (string, error) {
	if callCtx.Signer == "" {
		callCtx.Signer = s.signer.ID()
	}
	if callCtx.Receiver == "" {
		callCtx.Receiver = receiverID
	}
	if callCtx.Receiver == "" {
		callCtx.Receiver = s.signer.ID()
	}

	actions, err := action.TranslateAll(specs)
	if err != nil {
		return "", classifyOrPass(err, callCtx)
	}

	out, err := s.signer.SignAndSendTransaction(ctx, receiverID, actions)
	if err != nil {
		return "", classifyOrPass(err, callCtx)
	}

	success, err := outcome.Normalize(out, callCtx)
	if err != nil {
		return "", err
	}

	return s.renderSuccess(callCtx.Operation, success), nil
}

// classifyOrPass runs errors through classification but keeps the empty-batch
// sentinel intact for callers that want to distinguish it.
func classifyOrPass(err error, callCtx outcome.Context) error {
	if errors.Is(err, action.ErrEmptyBatch) {
		return err
	}
	return outcome.Classify(err, callCtx)
}

func (s *Service) renderSuccess(operation string, success *outcome.Success) string {
	var b strings.Builder

	if operation == "" {
		operation = "transaction"
	}
	fmt.Fprintf(&b, "%s succeeded\n", operation)
	fmt.Fprintf(&b, "transaction id: %s\n", success.TxHash)
	fmt.Fprintf(&b, "return value: %s\n", renderValue(success.Value))
	fmt.Fprintf(&b, "gas burnt: %s TGas", units.FormatTGas(strconv.FormatUint(success.GasBurnt, 10), units.DefaultFracDigits))

	if len(success.Logs) > 0 {
		b.WriteString("\nlogs:")
		for _, line := range success.Logs {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}

	if s.explorer != "" && success.TxHash != "" {
		fmt.Fprintf(&b, "\nexplorer: %s/txns/%s", s.explorer, success.TxHash)
	}

	return b.String()
}

// renderValue renders a decoded return payload: strings verbatim, structured
// values re-encoded as compact JSON.
func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return outcome.VoidValue
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// decodeArgs parses tool arguments strictly: unknown fields are rejected so
// callers learn about typos instead of having fields silently ignored, and
// numeric literals survive as json.Number.
func decodeArgs(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		return nearerr.Wrap(nearerr.CategoryArgEncoding, err, "invalid tool arguments")
	}
	return nil
}

func textResult(text string) *types.PublicToolResult {
	return &types.PublicToolResult{
		Content: []*types.PublicToolResultContent{
			{
				Type: swag.String("text"),
				Text: swag.String(text),
			},
		},
	}
}

func errorResult(err error) *types.PublicToolResult {
	result := textResult(err.Error())
	result.IsError = true
	return result
}

// objectSchema builds the JSON schema served for a tool's arguments.
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}
