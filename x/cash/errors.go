package cash

import (
	"github.com/iov-one/xsigners/errors"
)

// cash takes 30-39
var (
	ErrInsufficientFunds = errors.Register(30, "insufficient funds")
	ErrInvalidAccount    = errors.Register(31, "invalid account")
)
