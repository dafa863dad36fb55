package action_test

import (
	"encoding/json"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/action"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/tx"
)

const testPublicKey = "ed25519:EFK7FbMUWPhpTVVMzzWXU3XrhDsCMfzLWcQiqCdMKHWK"

func TestDecodeDispatchesOnType(t *testing.T) {
	tests := []struct {
		raw  string
		kind string
	}{
		{`{"type":"CreateAccount"}`, action.TypeCreateAccount},
		{`{"type":"DeployContract","code_base64":"aGVsbG8="}`, action.TypeDeployContract},
		{`{"type":"FunctionCall","method_name":"ping"}`, action.TypeFunctionCall},
		{`{"type":"Transfer","deposit":"0.1"}`, action.TypeTransfer},
		{`{"type":"Stake","amount":"1000000000000000000000000","public_key":"` + testPublicKey + `"}`, action.TypeStake},
		{`{"type":"AddKey","public_key":"` + testPublicKey + `","permission":"FullAccess"}`, action.TypeAddKey},
		{`{"type":"DeleteKey","public_key":"` + testPublicKey + `"}`, action.TypeDeleteKey},
		{`{"type":"DeleteAccount","beneficiary_id":"bob.near"}`, action.TypeDeleteAccount},
	}

	for _, tt := range tests {
		spec, err := action.Decode(json.RawMessage(tt.raw))
		require.NoError(t, err, "raw=%s", tt.raw)
		assert.Equal(t, tt.kind, spec.Kind())
	}
}

func TestDecodeRejectsUnknownAndMissingType(t *testing.T) {
	_, err := action.Decode(json.RawMessage(`{"type":"Delegate"}`))
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryArgEncoding))
	assert.Contains(t, err.Error(), "Delegate")

	_, err = action.Decode(json.RawMessage(`{"deposit":"1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing the type field")

	_, err = action.Decode(json.RawMessage(`"not an object"`))
	require.Error(t, err)
}

func TestPermissionUnmarshal(t *testing.T) {
	var full action.Permission
	require.NoError(t, json.Unmarshal([]byte(`"FullAccess"`), &full))
	assert.True(t, full.FullAccess)
	assert.Nil(t, full.FunctionCall)

	var scoped action.Permission
	require.NoError(t, json.Unmarshal([]byte(`{"receiver_id":"app.near","method_names":["get"],"allowance":"0.25"}`), &scoped))
	assert.False(t, scoped.FullAccess)
	require.NotNil(t, scoped.FunctionCall)
	assert.Equal(t, "app.near", scoped.FunctionCall.ReceiverID)

	var bad action.Permission
	assert.Error(t, json.Unmarshal([]byte(`"Partial"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"method_names":["get"]}`), &bad), "scope without receiver_id")
}

func TestTranslateFunctionCallDefaults(t *testing.T) {
	native, err := action.Translate(action.FunctionCall{MethodName: "increase"})
	require.NoError(t, err)

	fc := native.FunctionCall
	assert.Equal(t, "increase", fc.MethodName)
	assert.Equal(t, []byte("{}"), fc.Args)
	assert.Equal(t, uint64(30_000_000_000_000), fc.Gas)
	assert.Equal(t, "0", fc.Deposit.String())
}

func TestTranslateFunctionCallExplicitValues(t *testing.T) {
	native, err := action.Translate(action.FunctionCall{
		ContractID: "counter.near",
		MethodName: "increase",
		Args:       map[string]any{"by": float64(2)},
		Gas:        null.StringFrom("100"),
		Deposit:    null.StringFrom("0.5"),
	})
	require.NoError(t, err)

	fc := native.FunctionCall
	assert.JSONEq(t, `{"by":2}`, string(fc.Args))
	assert.Equal(t, uint64(100_000_000_000_000), fc.Gas)
	assert.Equal(t, "500000000000000000000000", fc.Deposit.String())
}

func TestTranslateFunctionCallGasRange(t *testing.T) {
	// 2^64 gas units is just under 18.5 million TGas.
	_, err := action.Translate(action.FunctionCall{MethodName: "m", Gas: null.StringFrom("20000000")})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryInvalidAmount))
	assert.Contains(t, err.Error(), "64-bit gas range")

	_, err = action.Translate(action.FunctionCall{MethodName: "m"})
	require.NoError(t, err)
}

func TestTranslateStakePassesRawYocto(t *testing.T) {
	native, err := action.Translate(action.Stake{
		Amount:    "1500000000000000000000000",
		PublicKey: testPublicKey,
	})
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000000000", native.Stake.Stake.String())

	// Display-style input is rejected, not silently scaled.
	_, err = action.Translate(action.Stake{Amount: "1.5", PublicKey: testPublicKey})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryInvalidAmount))
}

func TestTranslateAddKeyPermissions(t *testing.T) {
	full, err := action.Translate(action.AddKey{
		PublicKey:  testPublicKey,
		Permission: action.Permission{FullAccess: true},
	})
	require.NoError(t, err)
	assert.Equal(t, tx.FullAccessKey(), full.AddKey.AccessKey)

	scoped, err := action.Translate(action.AddKey{
		PublicKey: testPublicKey,
		Permission: action.Permission{FunctionCall: &action.FunctionCallScope{
			ReceiverID: "app.near",
			Allowance:  null.StringFrom("0.25"),
		}},
	})
	require.NoError(t, err)
	perm := scoped.AddKey.AccessKey.Permission.FunctionCall
	assert.Equal(t, "app.near", perm.ReceiverID)
	assert.Empty(t, perm.MethodNames, "empty list means any method")
	require.NotNil(t, perm.Allowance)
	assert.Equal(t, "250000000000000000000000", perm.Allowance.String())
}

func TestTranslateAddKeyAllowanceTriState(t *testing.T) {
	scope := func(allowance null.String) action.Spec {
		return action.AddKey{
			PublicKey: testPublicKey,
			Permission: action.Permission{FunctionCall: &action.FunctionCallScope{
				ReceiverID: "app.near",
				Allowance:  allowance,
			}},
		}
	}

	// An explicit "0" is a key that cannot spend gas, not an unlimited one.
	zero, err := action.Translate(scope(null.StringFrom("0")))
	require.NoError(t, err)
	require.NotNil(t, zero.AddKey.AccessKey.Permission.FunctionCall.Allowance)
	assert.Equal(t, "0", zero.AddKey.AccessKey.Permission.FunctionCall.Allowance.String())

	unlimited, err := action.Translate(scope(null.String{}))
	require.NoError(t, err)
	assert.Nil(t, unlimited.AddKey.AccessKey.Permission.FunctionCall.Allowance)
}

func TestTranslateAllPreservesOrder(t *testing.T) {
	native, err := action.TranslateAll([]action.Spec{
		action.Transfer{Deposit: "0.1"},
		action.FunctionCall{ContractID: "counter.x", MethodName: "increase"},
	})
	require.NoError(t, err)
	require.Len(t, native, 2)
	assert.Equal(t, "100000000000000000000000", native[0].Transfer.Deposit.String())
	assert.Equal(t, "increase", native[1].FunctionCall.MethodName)
}

func TestTranslateAllFailsFast(t *testing.T) {
	native, err := action.TranslateAll([]action.Spec{
		action.Transfer{Deposit: "0.1"},
		action.Transfer{Deposit: "abc"},
		action.Transfer{Deposit: "0.2"},
	})
	require.Error(t, err)
	assert.Nil(t, native, "a failing action must yield no native actions at all")
	assert.Contains(t, err.Error(), "action 2 of 3 (Transfer)")
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryInvalidAmount))
}

func TestEmptyBatchRejected(t *testing.T) {
	_, err := action.TranslateAll(nil)
	assert.ErrorIs(t, err, action.ErrEmptyBatch)

	_, err = action.DecodeAll(nil)
	assert.ErrorIs(t, err, action.ErrEmptyBatch)
}

func TestDecodeAllTagsActionErrors(t *testing.T) {
	_, err := action.DecodeAll([]json.RawMessage{
		json.RawMessage(`{"type":"Transfer","deposit":"1"}`),
		json.RawMessage(`{"type":"Nope"}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 2 of 2")
}
