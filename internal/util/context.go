package util

import (
	"context"
)

// CTXKey is the package-owned context key type, preventing collisions with
// foreign context values.
type CTXKey string

const (
	CTXKeyRequestID     CTXKey = "request_id"
	CTXKeyDisableLogger CTXKey = "disable_logger"
)

// RequestIDFromContext returns the request id attached by the middleware.
func RequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(CTXKeyRequestID)
	if val == nil {
		return "", ErrNoValueInContext
	}

	id, ok := val.(string)
	if !ok {
		return "", ErrNoValueInContext
	}
	return id, nil
}

// DisableLogger marks the context so LogFromContext returns a disabled
// logger, used for endpoints that would otherwise spam (probes).
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	return context.WithValue(ctx, CTXKeyDisableLogger, shouldDisable)
}

// ShouldDisableLogger checks whether the logger is disabled for this context.
func ShouldDisableLogger(ctx context.Context) bool {
	val := ctx.Value(CTXKeyDisableLogger)
	if val == nil {
		return false
	}

	disabled, ok := val.(bool)
	if !ok {
		return false
	}
	return disabled
}
