package app

import (
	"context"
	"testing"

	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/fibontest"
	"github.com/fibondev/fibon-token/fibontest/assert"
	"github.com/fibondev/fibon-token/store"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()
	h := &fibontest.Handler{}
	r.Handle(&fibontest.Msg{RoutePath: "test/good"}, h)

	tx := &fibontest.Tx{Msg: &fibontest.Msg{RoutePath: "test/good"}}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()
	tx := &fibontest.Tx{Msg: &fibontest.Msg{RoutePath: "test/missing"}}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterInvalidPath(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		r.Handle(&fibontest.Msg{RoutePath: "bad path!"}, &fibontest.Handler{})
	})
}

func TestRouterDuplicatePath(t *testing.T) {
	r := NewRouter()
	r.Handle(&fibontest.Msg{RoutePath: "test/dup"}, &fibontest.Handler{})
	assert.Panics(t, func() {
		r.Handle(&fibontest.Msg{RoutePath: "test/dup"}, &fibontest.Handler{})
	})
}
