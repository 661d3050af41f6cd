package fibontest

import (
	"sync/atomic"

	fibon "github.com/fibondev/fibon-token"
)

// Handler implements a mock of fibon.Handler. Each method call is counted
// and the configured results are returned.
type Handler struct {
	checkCall   int64
	deliverCall int64

	// CheckResult is returned by the Check method.
	CheckResult fibon.CheckResult
	// CheckErr if set is returned by the Check method.
	CheckErr error

	// DeliverResult is returned by the Deliver method.
	DeliverResult fibon.DeliverResult
	// DeliverErr if set is returned by the Deliver method.
	DeliverErr error
}

var _ fibon.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	atomic.AddInt64(&h.checkCall, 1)
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	atomic.AddInt64(&h.deliverCall, 1)
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int {
	return int(atomic.LoadInt64(&h.checkCall))
}

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return int(atomic.LoadInt64(&h.deliverCall))
}

// CallCount returns the total number of method calls.
func (h *Handler) CallCount() int {
	return h.CheckCallCount() + h.DeliverCallCount()
}

// Decorator implements a mock of fibon.Decorator. Each method call is
// counted and forwarded to the next handler.
type Decorator struct {
	checkCall   int64
	deliverCall int64
}

var _ fibon.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Checker) (*fibon.CheckResult, error) {
	atomic.AddInt64(&d.checkCall, 1)
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Deliverer) (*fibon.DeliverResult, error) {
	atomic.AddInt64(&d.deliverCall, 1)
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount returns the number of times Check was called.
func (d *Decorator) CheckCallCount() int {
	return int(atomic.LoadInt64(&d.checkCall))
}

// DeliverCallCount returns the number of times Deliver was called.
func (d *Decorator) DeliverCallCount() int {
	return int(atomic.LoadInt64(&d.deliverCall))
}

// CallCount returns the total number of method calls.
func (d *Decorator) CallCount() int {
	return d.CheckCallCount() + d.DeliverCallCount()
}
