package outcome_test

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/outcome"
	"github/chapool/go-near-tools/internal/near/rpc"
)

func txOutcome(t *testing.T, status string) *rpc.TxOutcome {
	t.Helper()

	var out rpc.TxOutcome
	payload := `{
		"status": ` + status + `,
		"transaction": {"hash": "7hY2kWDHQGnUshDBzrcXW4qsk6DCa4uJFTuYy4RqSmBc"},
		"transaction_outcome": {"id": "t1", "outcome": {"logs": [], "gas_burnt": 2427912946704, "tokens_burnt": "0", "executor_id": "alice.near"}},
		"receipts_outcome": [
			{"id": "r1", "outcome": {"logs": ["counter is now 2"], "gas_burnt": 1000, "tokens_burnt": "0", "executor_id": "counter.near"}}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &out))
	return &out
}

func TestNormalizeSuccessWithoutPayloadIsVoid(t *testing.T) {
	success, err := outcome.Normalize(txOutcome(t, `{"SuccessValue": ""}`), outcome.Context{})
	require.NoError(t, err)

	assert.Equal(t, outcome.VoidValue, success.Value)
	assert.Equal(t, "7hY2kWDHQGnUshDBzrcXW4qsk6DCa4uJFTuYy4RqSmBc", success.TxHash)
	assert.Equal(t, []string{"counter is now 2"}, success.Logs)
	assert.Equal(t, uint64(2427912946704+1000), success.GasBurnt)
}

func TestNormalizeSuccessDecodesJSONPayload(t *testing.T) {
	// base64 of {"ok":true}: the parsed object must come back, not the raw
	// string.
	success, err := outcome.Normalize(txOutcome(t, `{"SuccessValue": "eyJvayI6dHJ1ZX0="}`), outcome.Context{})
	require.NoError(t, err)

	obj, ok := success.Value.(map[string]any)
	require.True(t, ok, "JSON payloads decode to structured values, got %T", success.Value)
	assert.Equal(t, true, obj["ok"])

	// base64 of the JSON string "hello".
	success, err = outcome.Normalize(txOutcome(t, `{"SuccessValue": "ImhlbGxvIg=="}`), outcome.Context{})
	require.NoError(t, err)
	assert.Equal(t, "hello", success.Value)
}

func TestNormalizeSuccessReceiptIsVoid(t *testing.T) {
	success, err := outcome.Normalize(txOutcome(t, `{"SuccessReceiptId": "r1"}`), outcome.Context{})
	require.NoError(t, err)
	assert.Equal(t, outcome.VoidValue, success.Value)
}

func TestNormalizeClassifiesSymbolicKind(t *testing.T) {
	// Category must follow the symbolic type no matter what message text
	// rides along.
	status := `{"Failure": {"ActionError": {"index": 0, "kind": {"AccountDoesNotExist": {"account_id": "ghost.near"}}}}}`

	_, err := outcome.Normalize(txOutcome(t, status), outcome.Context{Operation: "transfer"})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryAccountDoesNotExist))
	assert.Contains(t, err.Error(), "transfer failed")
	assert.Contains(t, err.Error(), "ghost.near")
}

func TestNormalizeClassifierCatalog(t *testing.T) {
	tests := []struct {
		kind     string
		category nearerr.Category
		contains string
	}{
		{`{"AccountAlreadyExists": {"account_id": "taken.near"}}`, nearerr.CategoryAccountAlreadyExists, "taken.near already exists"},
		{`{"CreateAccountNotAllowed": {"account_id": "top.near", "predecessor_id": "alice.near"}}`, nearerr.CategoryCreateAccountNotAllowed, "not allowed to create account top.near"},
		{`{"DeleteAccountHasEnoughBalance": {"account_id": "rich.near"}}`, nearerr.CategoryDeleteAccountNotEmpty, "rich.near still holds funds"},
		{`{"DeleteAccountHasRent": {"account_id": "rent.near"}}`, nearerr.CategoryDeleteAccountNotEmpty, "rent.near still holds funds"},
		{`{"NotEnoughBalance": {"signer_id": "poor.near", "balance": "500000000000000000000000", "cost": "1000000000000000000000000"}}`, nearerr.CategoryInsufficientBalance, "has 0.5 NEAR, needs 1 NEAR"},
		{`{"MethodNotFound": {}}`, nearerr.CategoryMethodNotFound, "method increase does not exist on contract counter.near"},
		{`{"ContractSizeExceeded": {"size": 5242881, "limit": 4194304}}`, nearerr.CategoryContractSizeExceeded, "5242881 bytes exceeds the 4194304 byte limit"},
		{`{"AddKeyAlreadyExists": {"account_id": "alice.near", "public_key": "ed25519:abc"}}`, nearerr.CategoryKeyAlreadyExists, "key ed25519:abc already exists"},
		{`{"DeleteKeyDoesNotExist": {"account_id": "alice.near", "public_key": "ed25519:abc"}}`, nearerr.CategoryKeyNotFound, "key ed25519:abc does not exist"},
	}

	callCtx := outcome.Context{Receiver: "counter.near", Method: "increase", Signer: "alice.near"}
	for _, tt := range tests {
		status := `{"Failure": {"ActionError": {"index": 0, "kind": ` + tt.kind + `}}}`
		_, err := outcome.Normalize(txOutcome(t, status), callCtx)
		require.Error(t, err, "kind=%s", tt.kind)
		assert.True(t, nearerr.IsCategory(err, tt.category), "kind=%s got %v", tt.kind, err)
		assert.Contains(t, err.Error(), tt.contains, "kind=%s", tt.kind)
	}
}

func TestNormalizeAppendsExecutionError(t *testing.T) {
	status := `{"Failure": {"ActionError": {"index": 0, "kind": {"FunctionCallError": {"ExecutionError": "Smart contract panicked: overflow"}}}}}`

	_, err := outcome.Normalize(txOutcome(t, status), outcome.Context{Operation: "call function"})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryContractExecution))
	assert.Contains(t, err.Error(), "contract execution error: Smart contract panicked: overflow")
}

func TestNormalizeUnknownKindFallsBack(t *testing.T) {
	status := `{"Failure": {"ActionError": {"index": 0, "kind": {"TriesToUnstake": {"account_id": "v.near"}}}}}`

	_, err := outcome.Normalize(txOutcome(t, status), outcome.Context{Operation: "stake"})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryUnclassified))
	assert.Contains(t, err.Error(), "TriesToUnstake", "fallback must carry the raw failure")
}

func TestNormalizeInvalidTxError(t *testing.T) {
	status := `{"Failure": {"InvalidTxError": {"InvalidNonce": {"tx_nonce": 5, "ak_nonce": 9}}}}`

	_, err := outcome.Normalize(txOutcome(t, status), outcome.Context{})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryUnclassified))
	assert.Contains(t, err.Error(), "InvalidNonce")
}

func TestNormalizeNonFinalStatus(t *testing.T) {
	_, err := outcome.Normalize(txOutcome(t, `"Started"`), outcome.Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not reach a final state")
}

func TestClassifyCauseName(t *testing.T) {
	// No symbolic type anywhere; the nested cause decides.
	methodErr := &rpc.Error{Name: "HANDLER_ERROR", Cause: rpc.Cause{Name: "METHOD_NOT_FOUND"}}
	classified := outcome.Classify(methodErr, outcome.Context{Operation: "view function", Method: "get_count", Receiver: "counter.near"})
	assert.Equal(t, nearerr.CategoryMethodNotFound, classified.Category())
	assert.Contains(t, classified.Error(), "get_count does not exist on contract counter.near")

	accountErr := &rpc.Error{Name: "HANDLER_ERROR", Cause: rpc.Cause{
		Name: "UNKNOWN_ACCOUNT",
		Info: map[string]any{"requested_account_id": "ghost.near"},
	}}
	classified = outcome.Classify(accountErr, outcome.Context{})
	assert.Equal(t, nearerr.CategoryAccountDoesNotExist, classified.Category())
	assert.Contains(t, classified.Error(), "ghost.near does not exist")

	contractErr := &rpc.Error{Name: "HANDLER_ERROR", Cause: rpc.Cause{Name: "CONTRACT_CODE_NOT_FOUND"}}
	classified = outcome.Classify(contractErr, outcome.Context{Receiver: "empty.near"})
	assert.Equal(t, nearerr.CategoryMethodNotFound, classified.Category())
	assert.Contains(t, classified.Error(), "empty.near has no contract deployed")
}

func TestClassifyPassesThroughLocalCategories(t *testing.T) {
	local := nearerr.New(nearerr.CategoryInvalidAmount, `invalid NEAR amount "abc"`)
	classified := outcome.Classify(errors.Wrap(local, "action 1 of 2"), outcome.Context{Operation: "transfer"})
	assert.Equal(t, nearerr.CategoryInvalidAmount, classified.Category())
	assert.Contains(t, classified.Error(), "transfer failed")
}

func TestClassifyUnknownErrorIsUnclassified(t *testing.T) {
	classified := outcome.Classify(errors.New("connection reset by peer"), outcome.Context{Operation: "get balance"})
	assert.Equal(t, nearerr.CategoryUnclassified, classified.Category())
	assert.Contains(t, classified.Error(), "get balance failed: connection reset by peer")

	assert.Nil(t, outcome.Classify(nil, outcome.Context{}))
}
