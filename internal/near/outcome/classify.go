package outcome

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/nearerr"
	"github/chapool/go-near-tools/internal/near/rpc"
	"github/chapool/go-near-tools/internal/near/units"
)

// Context carries what the caller knows about the operation so classified
// messages can name the specific account, key or contract involved even when
// the node's report does not.
type Context struct {
	// Operation is the user-facing verb phrase, e.g. "transfer".
	Operation string
	// Signer is the account the transaction was signed with.
	Signer string
	// Receiver is the account the batch was submitted against.
	Receiver string
	// Method is the contract method, for call operations.
	Method string
	// PublicKey is the key being added, deleted or inspected.
	PublicKey string
	// ContractBytes is the decoded bytecode size, for deploy operations.
	ContractBytes int
}

// Classify converts any failure — node-reported, transport, or local — into
// a categorized error with a user-facing message. It never returns nil for a
// non-nil input; anything unrecognized becomes CategoryUnclassified with the
// raw message preserved.
func Classify(err error, callCtx Context) *nearerr.Error {
	if err == nil {
		return nil
	}

	// Locally classified errors (amount parsing, base64, key format) pass
	// through with the operation prefix only. The full chain text is kept:
	// batch errors carry their action position in the wrapping.
	var classified *nearerr.Error
	if errors.As(err, &classified) && classified.Category() != nearerr.CategoryUnclassified {
		return nearerr.New(classified.Category(), callCtx.prefix(err.Error()))
	}

	var nodeErr *rpc.Error
	if errors.As(err, &nodeErr) {
		if category, message, ok := classifyCause(nodeErr, callCtx); ok {
			return nearerr.New(category, callCtx.prefix(message))
		}
		return nearerr.New(nearerr.CategoryUnclassified, callCtx.prefix(nodeErr.Error()))
	}

	return nearerr.New(nearerr.CategoryUnclassified, callCtx.prefix(err.Error()))
}

// classifyFailure maps a parsed execution failure through the symbolic-kind
// catalog, falling back to the raw failure text. Contract execution-error
// text is appended to whichever classification applies; it is a separate
// signal from the classification itself.
func classifyFailure(f *Failure, callCtx Context) *nearerr.Error {
	category, message, ok := classifyKind(f, callCtx)
	if !ok {
		category = nearerr.CategoryUnclassified
		switch {
		case f.Kind != "":
			message = fmt.Sprintf("execution failed with %s: %s", f.Kind, f.Raw)
		case f.Raw != "":
			message = "execution failed: " + f.Raw
		default:
			message = "execution failed"
		}
	}

	if f.ExecutionError != "" {
		message += "; contract execution error: " + f.ExecutionError
	}

	return nearerr.New(category, callCtx.prefix(message))
}

// classifyKind is the symbolic-type catalog, checked before anything else.
func classifyKind(f *Failure, callCtx Context) (nearerr.Category, string, bool) {
	switch f.Kind {
	case "AccountDoesNotExist":
		account := f.info("account_id", callCtx.Receiver)
		return nearerr.CategoryAccountDoesNotExist, fmt.Sprintf("account %s does not exist", account), true

	case "AccountAlreadyExists":
		account := f.info("account_id", callCtx.Receiver)
		return nearerr.CategoryAccountAlreadyExists, fmt.Sprintf("account %s already exists", account), true

	case "CreateAccountNotAllowed":
		account := f.info("account_id", callCtx.Receiver)
		signer := f.info("predecessor_id", callCtx.Signer)
		return nearerr.CategoryCreateAccountNotAllowed, fmt.Sprintf("not allowed to create account %s from %s", account, signer), true

	case "DeleteAccountHasEnoughBalance", "DeleteAccountHasRent":
		account := f.info("account_id", callCtx.Receiver)
		return nearerr.CategoryDeleteAccountNotEmpty, fmt.Sprintf("account %s still holds funds and cannot be deleted", account), true

	case "NotEnoughBalance":
		account := f.info("signer_id", callCtx.Signer)
		message := fmt.Sprintf("account %s does not have enough balance", account)
		if balance, cost := f.info("balance", ""), f.info("cost", ""); balance != "" && cost != "" {
			message += fmt.Sprintf(": has %s NEAR, needs %s NEAR",
				units.FormatNear(balance, units.DefaultFracDigits),
				units.FormatNear(cost, units.DefaultFracDigits))
		}
		return nearerr.CategoryInsufficientBalance, message, true

	case "LackBalanceForState":
		account := f.info("account_id", callCtx.Receiver)
		return nearerr.CategoryInsufficientBalance, fmt.Sprintf("account %s does not have enough balance to cover its storage", account), true

	case "MethodNotFound":
		return nearerr.CategoryMethodNotFound, methodNotFoundMessage(callCtx), true

	case "ContractSizeExceeded":
		size := f.infoInt("size", callCtx.ContractBytes)
		message := fmt.Sprintf("contract size %d bytes exceeds the allowed limit", size)
		if limit := f.infoInt("limit", 0); limit > 0 {
			message = fmt.Sprintf("contract size %d bytes exceeds the %d byte limit", size, limit)
		}
		return nearerr.CategoryContractSizeExceeded, message, true

	case "AddKeyAlreadyExists":
		account := f.info("account_id", callCtx.Receiver)
		key := f.info("public_key", callCtx.PublicKey)
		return nearerr.CategoryKeyAlreadyExists, fmt.Sprintf("key %s already exists on account %s", key, account), true

	case "DeleteKeyDoesNotExist":
		account := f.info("account_id", callCtx.Receiver)
		key := f.info("public_key", callCtx.PublicKey)
		return nearerr.CategoryKeyNotFound, fmt.Sprintf("key %s does not exist on account %s", key, account), true

	case "FunctionCallError":
		// The appended execution text carries the detail.
		return nearerr.CategoryContractExecution, "contract execution failed", true

	default:
		return "", "", false
	}
}

// classifyCause is the nested cause-name catalog, for node errors that carry
// no symbolic action failure.
func classifyCause(nodeErr *rpc.Error, callCtx Context) (nearerr.Category, string, bool) {
	info := nodeErr.Cause.Info

	switch nodeErr.CauseName() {
	case "UNKNOWN_ACCOUNT":
		account := causeInfo(info, "requested_account_id", callCtx.Receiver)
		return nearerr.CategoryAccountDoesNotExist, fmt.Sprintf("account %s does not exist", account), true

	case "UNKNOWN_ACCESS_KEY":
		key := causeInfo(info, "public_key", callCtx.PublicKey)
		account := causeInfo(info, "requested_account_id", callCtx.Signer)
		return nearerr.CategoryKeyNotFound, fmt.Sprintf("key %s does not exist on account %s", key, account), true

	case "CONTRACT_CODE_NOT_FOUND", "NO_CONTRACT_CODE":
		account := causeInfo(info, "contract_account_id", callCtx.Receiver)
		return nearerr.CategoryMethodNotFound, fmt.Sprintf("account %s has no contract deployed", account), true

	case "METHOD_NOT_FOUND":
		return nearerr.CategoryMethodNotFound, methodNotFoundMessage(callCtx), true

	default:
		return "", "", false
	}
}

func methodNotFoundMessage(callCtx Context) string {
	switch {
	case callCtx.Method != "" && callCtx.Receiver != "":
		return fmt.Sprintf("method %s does not exist on contract %s", callCtx.Method, callCtx.Receiver)
	case callCtx.Method != "":
		return fmt.Sprintf("method %s does not exist on the contract", callCtx.Method)
	default:
		return "the requested method does not exist on the contract"
	}
}

// prefix names the operation in front of the classified message, so every
// error block identifies what was being attempted.
func (c Context) prefix(message string) string {
	if c.Operation == "" {
		return message
	}
	return c.Operation + " failed: " + message
}

// info reads a string field out of the failure's kind payload, falling back
// to what the caller knows.
func (f *Failure) info(key, fallback string) string {
	if f.KindInfo != nil {
		if s, ok := f.KindInfo[key].(string); ok && s != "" {
			return s
		}
	}
	if fallback != "" {
		return fallback
	}
	return "<unknown>"
}

// infoInt reads a numeric field; JSON numbers arrive as float64.
func (f *Failure) infoInt(key string, fallback int) int64 {
	if f.KindInfo != nil {
		switch v := f.KindInfo[key].(type) {
		case float64:
			return int64(v)
		case string:
			// Size limits occasionally arrive as decimal strings.
			if n, err := parseInt(v); err == nil {
				return n
			}
		}
	}
	return int64(fallback)
}

func causeInfo(info map[string]any, key, fallback string) string {
	if info != nil {
		if s, ok := info[key].(string); ok && s != "" {
			return s
		}
	}
	if fallback != "" {
		return fallback
	}
	return "<unknown>"
}

func parseInt(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n)
	return n, err
}
