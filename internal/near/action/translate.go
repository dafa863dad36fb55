package action

import (
	"math/big"

	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/keys"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/tx"
	"github/chapool/go-near-tools/internal/near/units"
)

// Translate maps one abstract action to its native form. Pure: no I/O, no
// state, every failure reported before anything reaches the network.
func Translate(spec Spec) (tx.Action, error) {
	return spec.translate()
}

// TranslateAll maps an ordered batch, preserving order and failing fast: the
// first bad action aborts the whole batch, so a caller never submits a
// partial list. The empty list is rejected before any translation occurs.
func TranslateAll(specs []Spec) ([]tx.Action, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyBatch
	}

	native := make([]tx.Action, 0, len(specs))
	for i, spec := range specs {
		a, err := spec.translate()
		if err != nil {
			return nil, errors.Wrapf(err, "action %d of %d (%s)", i+1, len(specs), spec.Kind())
		}
		native = append(native, a)
	}
	return native, nil
}

func (CreateAccount) translate() (tx.Action, error) {
	return tx.NewCreateAccount(), nil
}

func (a DeployContract) translate() (tx.Action, error) {
	code, err := codec.DecodeBase64("code_base64", a.CodeBase64)
	if err != nil {
		return tx.Action{}, err
	}
	return tx.NewDeployContract(code), nil
}

func (a FunctionCall) translate() (tx.Action, error) {
	if a.MethodName == "" {
		return tx.Action{}, nearerr.New(nearerr.CategoryArgEncoding, "function call requires method_name")
	}

	args, err := codec.EncodeArgs(a.Args)
	if err != nil {
		return tx.Action{}, err
	}

	gasDisplay := DefaultGas
	if a.Gas.Valid {
		gasDisplay = a.Gas.String
	}
	gas, err := units.ParseTGas(gasDisplay)
	if err != nil {
		return tx.Action{}, err
	}
	if !gas.IsUint64() {
		return tx.Action{}, nearerr.Newf(nearerr.CategoryInvalidAmount, "gas %s TGas exceeds the 64-bit gas range", gasDisplay)
	}

	depositDisplay := DefaultDeposit
	if a.Deposit.Valid {
		depositDisplay = a.Deposit.String
	}
	deposit, err := units.ParseNear(depositDisplay)
	if err != nil {
		return tx.Action{}, err
	}

	return tx.NewFunctionCall(a.MethodName, args, gas.Uint64(), deposit), nil
}

func (a Transfer) translate() (tx.Action, error) {
	// No default here: a transfer without an explicit amount is a caller bug.
	deposit, err := units.ParseNear(a.Deposit)
	if err != nil {
		return tx.Action{}, err
	}
	return tx.NewTransfer(deposit), nil
}

func (a Stake) translate() (tx.Action, error) {
	stake, err := units.ParseYocto(a.Amount)
	if err != nil {
		return tx.Action{}, err
	}
	pk, err := keys.ParsePublicKey(a.PublicKey)
	if err != nil {
		return tx.Action{}, err
	}
	return tx.NewStake(stake, pk), nil
}

func (a AddKey) translate() (tx.Action, error) {
	pk, err := keys.ParsePublicKey(a.PublicKey)
	if err != nil {
		return tx.Action{}, err
	}

	accessKey, err := a.Permission.accessKey()
	if err != nil {
		return tx.Action{}, err
	}
	return tx.NewAddKey(pk, accessKey), nil
}

func (a DeleteKey) translate() (tx.Action, error) {
	pk, err := keys.ParsePublicKey(a.PublicKey)
	if err != nil {
		return tx.Action{}, err
	}
	return tx.NewDeleteKey(pk), nil
}

func (a DeleteAccount) translate() (tx.Action, error) {
	if a.BeneficiaryID == "" {
		return tx.Action{}, nearerr.New(nearerr.CategoryArgEncoding, "delete account requires beneficiary_id")
	}
	return tx.NewDeleteAccount(a.BeneficiaryID), nil
}

// accessKey builds the native key state for either permission shape.
func (p Permission) accessKey() (tx.AccessKey, error) {
	if p.FullAccess {
		return tx.FullAccessKey(), nil
	}
	if p.FunctionCall == nil {
		return tx.AccessKey{}, nearerr.New(nearerr.CategoryArgEncoding, "permission is neither full access nor a function-call scope")
	}

	var allowance *big.Int
	if p.FunctionCall.Allowance.Valid {
		v, err := units.ParseNear(p.FunctionCall.Allowance.String)
		if err != nil {
			return tx.AccessKey{}, err
		}
		allowance = v
	}
	return tx.FunctionCallAccessKey(p.FunctionCall.ReceiverID, p.FunctionCall.MethodNames, allowance), nil
}
