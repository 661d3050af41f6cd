package fibon

import (
	"fmt"
	"strings"
)

// QueryHandler is anything that can process read-only queries against the
// persisted state. It is the surface expected by UI and audit tooling.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter allows us to register many query handlers to different paths
// and dispatch to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterQuery adds a query handler at given path. Panics on duplicate
// registration or an invalid path.
func (r QueryRouter) RegisterQuery(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path must start with '/': %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil if none.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
