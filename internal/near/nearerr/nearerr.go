// Package nearerr defines the error categories shared by the NEAR core packages.
// Every failure a tool can surface is tagged with exactly one category; the
// outcome package turns categories into the user-facing message templates.
package nearerr

import (
	stderrors "errors"
	"fmt"
)

// Category is a stable, symbolic error kind.
type Category string

const (
	// Local validation failures, raised before anything touches the network.
	CategoryInvalidAmount Category = "INVALID_AMOUNT_FORMAT"
	CategoryInvalidBase64 Category = "INVALID_BASE64"
	CategoryArgEncoding   Category = "ARG_ENCODING_ERROR"
	CategoryInvalidKey    Category = "INVALID_KEY"

	// Ledger-reported conditions, mapped from the node's typed failures.
	CategoryAccountDoesNotExist     Category = "ACCOUNT_DOES_NOT_EXIST"
	CategoryAccountAlreadyExists    Category = "ACCOUNT_ALREADY_EXISTS"
	CategoryCreateAccountNotAllowed Category = "CREATE_ACCOUNT_NOT_ALLOWED"
	CategoryDeleteAccountNotEmpty   Category = "DELETE_ACCOUNT_NOT_EMPTY"
	CategoryInsufficientBalance     Category = "INSUFFICIENT_BALANCE"
	CategoryMethodNotFound          Category = "METHOD_NOT_FOUND"
	CategoryContractSizeExceeded    Category = "CONTRACT_SIZE_EXCEEDED"
	CategoryKeyAlreadyExists        Category = "KEY_ALREADY_EXISTS"
	CategoryKeyNotFound             Category = "KEY_NOT_FOUND"

	// The contract itself panicked after the transaction was accepted.
	CategoryContractExecution Category = "CONTRACT_EXECUTION_ERROR"

	// Anything the catalog cannot name.
	CategoryUnclassified Category = "UNCLASSIFIED_FAILURE"
)

// Error tags a failure with a Category while staying a regular error for
// wrapping and errors.Is/As chains.
type Error struct {
	category Category
	message  string
	cause    error
}

// New creates a categorized error.
func New(category Category, message string) *Error {
	return &Error{category: category, message: message}
}

// Newf creates a categorized error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{category: category, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category to an underlying error.
// Wrapf is Wrap with a formatted message.
func Wrapf(category Category, cause error, format string, args ...any) *Error {
	return Wrap(category, cause, fmt.Sprintf(format, args...))
}

func Wrap(category Category, cause error, message string) *Error {
	return &Error{category: category, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches two categorized errors by category, so sentinel-style checks
// like errors.Is(err, nearerr.New(CategoryInvalidAmount, "")) work.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.category == t.category
}

// Category returns the symbolic kind of the error.
func (e *Error) Category() Category {
	if e == nil {
		return CategoryUnclassified
	}
	return e.category
}

// Message returns the message without the cause chain.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// CategoryOf extracts the category from any error, walking the wrap chain.
// Uncategorized errors report CategoryUnclassified.
func CategoryOf(err error) Category {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Category()
	}
	return CategoryUnclassified
}

// IsCategory reports whether err carries the given category anywhere in its
// chain.
func IsCategory(err error, category Category) bool {
	return CategoryOf(err) == category
}
