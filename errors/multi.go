package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error was given, nil is returned. A single non-nil error is
// returned as it is. Appending to a multi error flattens it.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a list of errors that is represented as a single error.
type multiErr []error

func (e multiErr) Error() string {
	points := make([]string, len(e))
	for i, err := range e {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e), strings.Join(points, "\n\t"))
}

// Unpack returns the list of all grouped errors.
func (e multiErr) Unpack() []error {
	return e
}

// unpacker is implemented by errors that group several errors together.
type unpacker interface {
	Unpack() []error
}
