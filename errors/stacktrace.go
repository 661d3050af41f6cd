package errors

import (
	"github.com/pkg/errors"
)

// stackTracer is implemented by errors that carry a recorded stack trace, as
// produced by the github.com/pkg/errors package.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// withStack attaches a stack trace to given error, unless any error in its
// cause chain already carries one. Recording must happen at the deepest wrap
// call so that the trace points to the error origin.
func withStack(err error) error {
	for e := err; e != nil; {
		if _, ok := e.(stackTracer); ok {
			return err
		}
		c, ok := e.(causer)
		if !ok {
			break
		}
		e = c.Cause()
	}
	return errors.WithStack(err)
}
