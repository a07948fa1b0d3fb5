package app

import (
	"github.com/iov-one/xsigners/errors"
)

// app takes 40-49
var (
	ErrUnknownCode = errors.Register(40, "unknown contract code")
)
