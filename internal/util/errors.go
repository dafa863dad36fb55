package util

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoValueInContext is returned by the *FromContext accessors when the
	// requested value was never attached.
	ErrNoValueInContext = errors.New("no value in context")
)
