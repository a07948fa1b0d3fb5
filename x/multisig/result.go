package multisig

import (
	"github.com/iov-one/xsigners/errors"
)

// EnvError tags an environment level failure of a dispatched call.
type EnvError int32

const (
	EnvUnexpected EnvError = iota
	EnvDecode
	EnvCalleeTrapped
	EnvCalleeReverted
	EnvTransferFailed
	EnvNotCallable
)

var envErrorNames = map[EnvError]string{
	EnvUnexpected:     "Unexpected",
	EnvDecode:         "Decode",
	EnvCalleeTrapped:  "CalleeTrapped",
	EnvCalleeReverted: "CalleeReverted",
	EnvTransferFailed: "TransferFailed",
	EnvNotCallable:    "NotCallable",
}

func (e EnvError) String() string {
	if name, ok := envErrorNames[e]; ok {
		return name
	}
	return "Unexpected"
}

// TxResult is the outcome of a dispatched transaction. Err is nil on
// success and otherwise wraps either ErrLangExecutionFailed or
// ErrEnvExecutionFailed.
type TxResult struct {
	Output []byte
	Err    error
	Env    EnvError
}

// Success returns true if the call returned normally.
func (r TxResult) Success() bool {
	return r.Err == nil
}

// Outcome returns a short stable label of the result, used for events and
// metrics.
func (r TxResult) Outcome() string {
	switch {
	case r.Err == nil:
		return "success"
	case ErrLangExecutionFailed.Is(r.Err):
		return "lang_failed"
	default:
		return "env_failed:" + r.Env.String()
	}
}

// classify converts the outcome of Host.Invoke into a TxResult. A callee
// that could not read its input is an application level failure. Anything
// else the host reports is an environment failure.
func classify(out []byte, err error) TxResult {
	if err == nil {
		return TxResult{Output: out}
	}
	if errors.ErrCouldNotReadInput.Is(err) {
		return TxResult{Err: errors.Wrap(ErrLangExecutionFailed, err.Error())}
	}

	env := EnvUnexpected
	switch {
	case errors.ErrDecode.Is(err):
		env = EnvDecode
	case errors.ErrCalleeTrapped.Is(err):
		env = EnvCalleeTrapped
	case errors.ErrCalleeReverted.Is(err):
		env = EnvCalleeReverted
	case errors.ErrTransferFailed.Is(err):
		env = EnvTransferFailed
	case errors.ErrNotCallable.Is(err):
		env = EnvNotCallable
	}
	return TxResult{
		Env: env,
		Err: errors.Wrapf(ErrEnvExecutionFailed, "%s: %s", env, err),
	}
}
