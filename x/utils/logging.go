package utils

import (
	"time"

	fibon "github.com/fibondev/fibon-token"
)

// Logging is a decorator that logs every request, its duration and
// outcome.
type Logging struct{}

var _ fibon.Decorator = Logging{}

// NewLogging creates a logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs the request with a call type of "check".
func (l Logging) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Checker) (*fibon.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l.log(ctx, "check", tx, start, err)
	return res, err
}

// Deliver logs the request with a call type of "deliver".
func (l Logging) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Deliverer) (*fibon.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l.log(ctx, "deliver", tx, start, err)
	return res, err
}

func (Logging) log(ctx fibon.Context, call string, tx fibon.Tx, start time.Time, err error) {
	logger := fibon.GetLogger(ctx).With(
		"call", call,
		"path", fibon.GetPath(tx),
		"duration", time.Since(start),
	)
	if err == nil {
		logger.Info("transaction")
	} else {
		logger.With("err", err).Error("transaction")
	}
}
