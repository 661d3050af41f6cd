package app

import (
	"regexp"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]fibon.Handler
}

var _ fibon.Registry = (*Router)(nil)
var _ fibon.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]fibon.Handler, 10),
	}
}

// Handle implements the Registry interface. Path of the message is used as
// the routing destination. Panics on invalid path or a duplicate
// registration.
func (r *Router) Handle(m fibon.Msg, h fibon.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this message, or a noSuchPath
// result.
func (r *Router) handler(m fibon.Msg) fibon.Handler {
	if h, ok := r.routes[m.Path()]; ok {
		return h
	}
	return notFoundHandler(m.Path())
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, db, tx)
}

// notFoundHandler always returns ErrNotFound with the path in the
// description.
type notFoundHandler string

func (path notFoundHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}

func (path notFoundHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}
