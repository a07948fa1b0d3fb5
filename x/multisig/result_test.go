package multisig

import (
	"testing"

	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/weavetest/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		Out         []byte
		Err         error
		WantErr     *errors.Error
		WantEnv     EnvError
		WantOutcome string
	}{
		"success": {
			Out:         []byte("result"),
			WantOutcome: "success",
		},
		"callee could not read input": {
			Err:         errors.Wrap(errors.ErrCouldNotReadInput, "unknown selector"),
			WantErr:     ErrLangExecutionFailed,
			WantOutcome: "lang_failed",
		},
		"decode": {
			Err:         errors.ErrDecode,
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvDecode,
			WantOutcome: "env_failed:Decode",
		},
		"trapped": {
			Err:         errors.Wrap(errors.ErrCalleeTrapped, "out of gas"),
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvCalleeTrapped,
			WantOutcome: "env_failed:CalleeTrapped",
		},
		"reverted": {
			Err:         errors.Wrap(errors.ErrCalleeReverted, "boom"),
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvCalleeReverted,
			WantOutcome: "env_failed:CalleeReverted",
		},
		"transfer failed": {
			Err:         errors.ErrTransferFailed,
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvTransferFailed,
			WantOutcome: "env_failed:TransferFailed",
		},
		"not callable": {
			Err:         errors.ErrNotCallable,
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvNotCallable,
			WantOutcome: "env_failed:NotCallable",
		},
		"anything else": {
			Err:         errors.ErrState,
			WantErr:     ErrEnvExecutionFailed,
			WantEnv:     EnvUnexpected,
			WantOutcome: "env_failed:Unexpected",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := classify(tc.Out, tc.Err)
			assert.IsErr(t, tc.WantErr, res.Err)
			assert.Equal(t, tc.WantEnv, res.Env)
			assert.Equal(t, tc.WantOutcome, res.Outcome())
			assert.Equal(t, tc.WantErr == nil, res.Success())
			if res.Success() {
				assert.Equal(t, tc.Out, res.Output)
			}
		})
	}
}
