package tx

import (
	"math/big"

	"github.com/near/borsh-go"
	"github/chapool/go-near-tools/internal/near/keys"
)

// Action is the tagged union of everything a transaction can do. The ordinal
// of each variant is part of the wire format; new variants append, existing
// ones never move.
type Action struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  CreateAccount
	DeployContract DeployContract
	FunctionCall   FunctionCall
	Transfer       Transfer
	Stake          Stake
	AddKey         AddKey
	DeleteKey      DeleteKey
	DeleteAccount  DeleteAccount
}

const (
	ordCreateAccount borsh.Enum = iota
	ordDeployContract
	ordFunctionCall
	ordTransfer
	ordStake
	ordAddKey
	ordDeleteKey
	ordDeleteAccount
)

// CreateAccount creates the receiver account. It carries no payload; initial
// funding travels as a sibling Transfer in the same batch.
type CreateAccount struct{}

// DeployContract replaces the receiver's contract code.
type DeployContract struct {
	Code []byte
}

// FunctionCall invokes a method on the receiver's contract.
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    big.Int
}

// Transfer moves Deposit yoctoNEAR to the receiver.
type Transfer struct {
	Deposit big.Int
}

// Stake locks Stake yoctoNEAR under a validator key.
type Stake struct {
	Stake     big.Int
	PublicKey keys.PublicKey
}

// AddKey attaches an access key to the receiver account.
type AddKey struct {
	PublicKey keys.PublicKey
	AccessKey AccessKey
}

// DeleteKey removes an access key from the receiver account.
type DeleteKey struct {
	PublicKey keys.PublicKey
}

// DeleteAccount deletes the receiver and sends its remaining balance to the
// beneficiary.
type DeleteAccount struct {
	BeneficiaryID string
}

// AccessKey pairs a nonce with a permission. New keys start at nonce 0; the
// chain advances it per signed transaction.
type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

// AccessKeyPermission is either a scoped function-call grant or full access.
type AccessKeyPermission struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	FunctionCall FunctionCallPermission
	FullAccess   FullAccessPermission
}

const (
	ordPermissionFunctionCall borsh.Enum = iota
	ordPermissionFullAccess
)

// FunctionCallPermission restricts a key to calling MethodNames on
// ReceiverID, spending at most Allowance on gas. A nil Allowance is
// unlimited; an empty MethodNames list allows every method.
type FunctionCallPermission struct {
	Allowance   *big.Int
	ReceiverID  string
	MethodNames []string
}

// FullAccessPermission carries no payload.
type FullAccessPermission struct{}

// FullAccessKey returns a fresh full-access key state.
func FullAccessKey() AccessKey {
	return AccessKey{
		Permission: AccessKeyPermission{Enum: ordPermissionFullAccess},
	}
}

// FunctionCallAccessKey returns a fresh key state scoped to a contract.
func FunctionCallAccessKey(receiverID string, methodNames []string, allowance *big.Int) AccessKey {
	if methodNames == nil {
		methodNames = []string{}
	}
	return AccessKey{
		Permission: AccessKeyPermission{
			Enum: ordPermissionFunctionCall,
			FunctionCall: FunctionCallPermission{
				Allowance:   cloneOptional(allowance),
				ReceiverID:  receiverID,
				MethodNames: methodNames,
			},
		},
	}
}

// NewCreateAccount builds a CreateAccount action.
func NewCreateAccount() Action {
	return Action{Enum: ordCreateAccount}
}

// NewDeployContract builds a DeployContract action.
func NewDeployContract(code []byte) Action {
	return Action{Enum: ordDeployContract, DeployContract: DeployContract{Code: code}}
}

// NewFunctionCall builds a FunctionCall action. A nil deposit means zero.
func NewFunctionCall(methodName string, args []byte, gas uint64, deposit *big.Int) Action {
	return Action{Enum: ordFunctionCall, FunctionCall: FunctionCall{
		MethodName: methodName,
		Args:       args,
		Gas:        gas,
		Deposit:    clone(deposit),
	}}
}

// NewTransfer builds a Transfer action.
func NewTransfer(deposit *big.Int) Action {
	return Action{Enum: ordTransfer, Transfer: Transfer{Deposit: clone(deposit)}}
}

// NewStake builds a Stake action.
func NewStake(stake *big.Int, publicKey keys.PublicKey) Action {
	return Action{Enum: ordStake, Stake: Stake{Stake: clone(stake), PublicKey: publicKey}}
}

// NewAddKey builds an AddKey action.
func NewAddKey(publicKey keys.PublicKey, accessKey AccessKey) Action {
	return Action{Enum: ordAddKey, AddKey: AddKey{PublicKey: publicKey, AccessKey: accessKey}}
}

// NewDeleteKey builds a DeleteKey action.
func NewDeleteKey(publicKey keys.PublicKey) Action {
	return Action{Enum: ordDeleteKey, DeleteKey: DeleteKey{PublicKey: publicKey}}
}

// NewDeleteAccount builds a DeleteAccount action.
func NewDeleteAccount(beneficiaryID string) Action {
	return Action{Enum: ordDeleteAccount, DeleteAccount: DeleteAccount{BeneficiaryID: beneficiaryID}}
}

// clone copies an amount so callers cannot mutate an action after assembly.
// nil is treated as zero.
func clone(v *big.Int) big.Int {
	if v == nil {
		return big.Int{}
	}
	return *new(big.Int).Set(v)
}

func cloneOptional(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
