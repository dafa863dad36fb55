// Package action defines the abstract action descriptions accepted from tool
// callers and their translation into native ledger actions. Abstract fields
// are display-oriented (decimal strings, base58 keys, base64 payloads); the
// translation applies unit conversion and payload encoding in one place so
// the tool surface never touches wire representations.
package action

import (
	"bytes"
	"encoding/json"

	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/tx"
)

// Variant tags as they appear in the JSON "type" field.
const (
	TypeCreateAccount  = "CreateAccount"
	TypeDeployContract = "DeployContract"
	TypeFunctionCall   = "FunctionCall"
	TypeTransfer       = "Transfer"
	TypeStake          = "Stake"
	TypeAddKey         = "AddKey"
	TypeDeleteKey      = "DeleteKey"
	TypeDeleteAccount  = "DeleteAccount"
)

// Defaults applied when a FunctionCall omits optional fields.
const (
	DefaultGas     = "30" // TGas
	DefaultDeposit = "0"  // NEAR
)

// ErrEmptyBatch rejects zero-length action lists before any translation work.
var ErrEmptyBatch = errors.New("transaction requires at least one action")

// Spec is one abstract action. The set of implementations is closed: the
// unexported translate method keeps foreign variants out at compile time, so
// no defensive "unknown variant" branch exists anywhere downstream.
type Spec interface {
	// Kind returns the variant tag for error messages and logging.
	Kind() string

	translate() (tx.Action, error)
}

// CreateAccount asks the ledger to create the batch receiver as a new
// account. Initial funding travels as a separate Transfer in the same batch.
type CreateAccount struct{}

func (CreateAccount) Kind() string { return TypeCreateAccount }

// DeployContract carries contract bytecode as base64.
type DeployContract struct {
	CodeBase64 string `json:"code_base64"`
}

func (DeployContract) Kind() string { return TypeDeployContract }

// FunctionCall invokes a contract method. ContractID is informational for
// callers composing batches; where the call lands is decided by the batch
// receiver, not per action. Gas and Deposit distinguish absent (take the
// default) from an explicit value, so "0" deposits and odd gas limits pass
// through unaltered.
type FunctionCall struct {
	ContractID string         `json:"contract_id,omitempty"`
	MethodName string         `json:"method_name"`
	Args       map[string]any `json:"args,omitempty"`
	Gas        null.String    `json:"gas,omitempty"`     // display TGas, default "30"
	Deposit    null.String    `json:"deposit,omitempty"` // display NEAR, default "0"
}

func (FunctionCall) Kind() string { return TypeFunctionCall }

// Transfer moves Deposit (display NEAR, required) to the receiver.
type Transfer struct {
	Deposit string `json:"deposit"`
}

func (Transfer) Kind() string { return TypeTransfer }

// Stake locks Amount under a validator key. Amount is raw yoctoNEAR, not
// display units: stake amounts are routinely copied verbatim from validator
// tooling, and that contract is preserved here.
type Stake struct {
	Amount    string `json:"amount"`
	PublicKey string `json:"public_key"`
}

func (Stake) Kind() string { return TypeStake }

// AddKey attaches PublicKey to the receiver with the given permission.
type AddKey struct {
	PublicKey  string     `json:"public_key"`
	Permission Permission `json:"permission"`
}

func (AddKey) Kind() string { return TypeAddKey }

// DeleteKey removes PublicKey from the receiver.
type DeleteKey struct {
	PublicKey string `json:"public_key"`
}

func (DeleteKey) Kind() string { return TypeDeleteKey }

// DeleteAccount deletes the receiver, sending leftover balance to the
// beneficiary.
type DeleteAccount struct {
	BeneficiaryID string `json:"beneficiary_id"`
}

func (DeleteAccount) Kind() string { return TypeDeleteAccount }

// Permission is either the "FullAccess" literal or a function-call scope. In
// JSON the former is the bare string, the latter an object.
type Permission struct {
	FullAccess   bool
	FunctionCall *FunctionCallScope
}

// FunctionCallScope restricts a key to MethodNames on ReceiverID. An empty
// method list allows any method. Allowance is tri-state: absent means
// unlimited, an explicit "0" grants a key that cannot spend gas at all.
type FunctionCallScope struct {
	ReceiverID  string      `json:"receiver_id"`
	MethodNames []string    `json:"method_names,omitempty"`
	Allowance   null.String `json:"allowance,omitempty"` // display NEAR
}

const fullAccessLiteral = "FullAccess"

func (p *Permission) UnmarshalJSON(b []byte) error {
	var literal string
	if err := json.Unmarshal(b, &literal); err == nil {
		if literal != fullAccessLiteral {
			return errors.Errorf("unknown permission %q, expected %q or a function-call scope object", literal, fullAccessLiteral)
		}
		*p = Permission{FullAccess: true}
		return nil
	}

	var scope FunctionCallScope
	if err := json.Unmarshal(b, &scope); err != nil {
		return errors.Wrap(err, "permission must be the FullAccess literal or a function-call scope object")
	}
	if scope.ReceiverID == "" {
		return errors.New("function-call permission requires receiver_id")
	}
	*p = Permission{FunctionCall: &scope}
	return nil
}

func (p Permission) MarshalJSON() ([]byte, error) {
	if p.FullAccess {
		return json.Marshal(fullAccessLiteral)
	}
	if p.FunctionCall == nil {
		return nil, errors.New("permission is neither full access nor a function-call scope")
	}
	return json.Marshal(p.FunctionCall)
}

// Decode parses one JSON action description, dispatching on its "type" tag.
func Decode(raw json.RawMessage) (Spec, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryArgEncoding, err, "action is not a JSON object")
	}

	var (
		spec Spec
		err  error
	)
	switch probe.Type {
	case TypeCreateAccount:
		spec, err = decodeAs[CreateAccount](raw)
	case TypeDeployContract:
		spec, err = decodeAs[DeployContract](raw)
	case TypeFunctionCall:
		spec, err = decodeAs[FunctionCall](raw)
	case TypeTransfer:
		spec, err = decodeAs[Transfer](raw)
	case TypeStake:
		spec, err = decodeAs[Stake](raw)
	case TypeAddKey:
		spec, err = decodeAs[AddKey](raw)
	case TypeDeleteKey:
		spec, err = decodeAs[DeleteKey](raw)
	case TypeDeleteAccount:
		spec, err = decodeAs[DeleteAccount](raw)
	case "":
		return nil, nearerr.New(nearerr.CategoryArgEncoding, "action is missing the type field")
	default:
		return nil, nearerr.Newf(nearerr.CategoryArgEncoding, "unknown action type %q", probe.Type)
	}
	if err != nil {
		return nil, nearerr.Wrapf(nearerr.CategoryArgEncoding, err, "invalid %s action", probe.Type)
	}
	return spec, nil
}

// DecodeAll parses an ordered action list, rejecting the empty list up front.
func DecodeAll(raws []json.RawMessage) ([]Spec, error) {
	if len(raws) == 0 {
		return nil, ErrEmptyBatch
	}

	specs := make([]Spec, 0, len(raws))
	for i, raw := range raws {
		spec, err := Decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "action %d of %d", i+1, len(raws))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// decodeAs keeps numeric argument literals intact: call arguments re-encoded
// for the wire must not round-trip through float64.
func decodeAs[T Spec](raw json.RawMessage) (Spec, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
