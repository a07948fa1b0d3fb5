package errors

import (
	"fmt"
)

const (
	// SuccessABCICode signals that a request was processed without an
	// error.
	SuccessABCICode = 0

	// Errors that do not wrap a registered root error share this code and
	// a generic message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and the log message of an ABCI response
// describing err. Messages of errors that do not wrap a registered root
// error, and of recovered panics, are hidden unless debug is set.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	if debug {
		return Code(err), fmt.Sprintf("%+v", err)
	}
	if code := Code(err); code != internalABCICode && !ErrPanic.Is(err) {
		return code, err.Error()
	}
	return internalABCICode, internalABCILog
}
