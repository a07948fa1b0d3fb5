package multisig

import (
	"github.com/iov-one/xsigners/errors"
)

// multisig takes 1000-1015
var (
	ErrUnauthorized               = errors.Register(1000, "caller is not the wallet itself")
	ErrMaxOwnersReached           = errors.Register(1001, "max owners reached")
	ErrOwnerAlreadyExists         = errors.Register(1002, "owner already exists")
	ErrNotOwner                   = errors.Register(1003, "not an owner")
	ErrOwnersCantBeEmpty          = errors.Register(1004, "owners cannot be empty")
	ErrThresholdGreaterThanOwners = errors.Register(1005, "threshold greater than owners")
	ErrThresholdCantBeZero        = errors.Register(1006, "threshold cannot be zero")
	ErrMaxTransactionsReached     = errors.Register(1007, "max transactions reached")
	ErrTxIDOverflow               = errors.Register(1008, "transaction id overflow")
	ErrAlreadyVoted               = errors.Register(1009, "already voted")
	ErrInvalidTxID                = errors.Register(1010, "invalid transaction id")
	ErrTransferFailed             = errors.Register(1011, "transfer failed")
	ErrEnvExecutionFailed         = errors.Register(1012, "environment execution failed")
	ErrLangExecutionFailed        = errors.Register(1013, "language execution failed")
)
