package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field path to err. It returns nil when err is nil.
//
// Paths use Go field names joined with dots, for example Tx.Selector. List
// elements are addressed by index, for example Owners.2.
func Field(path string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, path: path, desc: description}
}

// AppendField adds a field error for path to errs. A nil fieldErr leaves
// errs unchanged.
func AppendField(errs error, path string, fieldErr error) error {
	return Append(errs, Field(path, fieldErr, ""))
}

type fieldError struct {
	parent error
	path   string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.path, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.path, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.path
}

// FieldErrors collects every error created for path, searching through
// wrapped and appended errors. The search does not descend into a matching
// field error.
func FieldErrors(err error, path string) []error {
	var found []error
	walkFields(err, func(fe error, p string) bool {
		if p != path {
			return true
		}
		found = append(found, fe)
		return false
	})
	return found
}

// walkFields calls visit for every field error reachable from err. Returning
// false stops the descent below that error.
func walkFields(err error, visit func(fe error, path string) bool) {
	for !isNilErr(err) {
		if f, ok := err.(interface{ Field() string }); ok {
			if !visit(err, f.Field()) {
				return
			}
		}
		switch e := err.(type) {
		case unpacker:
			for _, inner := range e.Unpack() {
				walkFields(inner, visit)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}
