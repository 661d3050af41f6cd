package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements the unpacker interface, it is flattened and all
// its sub errors are directly included into the result.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
			continue
		case multiError:
			res = append(res, e...)
		default:
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
