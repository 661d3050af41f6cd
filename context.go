package fibon

import (
	"context"
	"time"

	"github.com/fibondev/fibon-token/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just a copy of the standard implementation. We define it here to
// avoid verbosity in the method signatures of handlers and decorators.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyTime
)

// DefaultLogger is used for all context that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithHeight sets the block height for the Context. Panics if already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and true, or (0, false) if not
// present.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context. Panics if already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id, or panics if not set. The chain
// id is set once at startup and must always be available.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("Chain ID not set")
	}
	return val
}

// WithLogger sets the logger for the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger can be overridden below... no problem.
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithBlockTime sets the block time for the Context. Block time is always
// represented in UTC. The clock is read once per operation; handlers must
// use this value instead of sampling the wall clock.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the block time as declared in the context. An error is
// returned if the block time was not provided.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time then this function returns
// true.
//
// This function panics if the block time is not provided in the context.
// This must never happen. The block time is mandatory and is always set by
// the host.
func IsExpired(ctx Context, t UnixTime) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= AsUnixTime(blockNow)
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the context. Keep in mind that this function
// is not inclusive of current time. If given time is equal to "now" then
// this function returns false.
func InThePast(ctx Context, t time.Time) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t.Before(now)
}

// InTheFuture returns true if given time is in the future compared to the
// current time as declared in the context. Keep in mind that this function
// is not inclusive of current time. If given time is equal to "now" then
// this function returns false.
func InTheFuture(ctx Context, t time.Time) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t.After(now)
}
