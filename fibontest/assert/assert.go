// Package assert provides a small set of test assertions, tuned to the
// error handling of this project.
package assert

import (
	"reflect"
	"testing"

	"github.com/fibondev/fibon-token/errors"
)

// Nil fails the test if given value is not nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %#v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test if both values are not equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %#v\n got %#v", want, got)
	}
}

// Panics runs given function and fails the test if it does not panic.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// IsErr fails the test if the error is not of the wanted kind. Use the root
// error declarations from the errors package for the comparison.
func IsErr(t testing.TB, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %q error, got %+v", want, got)
	}
}
