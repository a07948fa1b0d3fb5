package xsigners

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to this package

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
	contextKeyContract
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithCaller sets the address of the account or contract that issued the
// current call. Every call frame has its own caller, so unlike most context
// values it is meant to be overwritten.
func WithCaller(ctx context.Context, caller Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the address that issued the current call.
func GetCaller(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok && len(val) != 0
}

// WithContract sets the address of the contract that is executing the
// current call frame.
func WithContract(ctx context.Context, contract Address) context.Context {
	return context.WithValue(ctx, contextKeyContract, contract)
}

// GetContract returns the address of the contract executing the current
// call frame.
func GetContract(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyContract).(Address)
	return val, ok && len(val) != 0
}
