package app

import (
	"fmt"

	"github.com/iov-one/xsigners/errors"
)

// trap converts a panic recovered from a contract into the error the call
// fails with.
func trap(p interface{}) error {
	if oog, ok := p.(outOfGas); ok {
		return errors.Wrapf(errors.ErrCalleeTrapped, "out of gas: used %d of %d", oog.used, oog.limit)
	}
	return errors.Wrap(errors.ErrCalleeTrapped, normalizePanic(p).Error())
}

// normalizePanic makes sure we can get a nice error (with stack) out of it
func normalizePanic(p interface{}) error {
	if err, isErr := p.(error); isErr {
		return errors.Wrap(errors.ErrPanic, err.Error())
	}
	msg := fmt.Sprintf("%v", p)
	return errors.Wrap(errors.ErrPanic, msg)
}
