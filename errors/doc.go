/*
Package errors implements the error handling used across xsigners.

Every error returned by the ledger or an extension wraps one of the root
errors declared with Register. Root errors carry a unique numeric code, so a
client can tell failures apart without parsing messages, and they can be
tested with the Is method no matter how many times they were wrapped.

Reuse the root errors of this package where possible and register custom
ones in the extension when absolutely necessary (see x/multisig/errors.go).

There is also support for stacktraces. Wrap the root error at the point of
failure, errors.Wrap(ErrNotFound, "...") or ErrNotFound.New("..."), so that a
stack trace is attached. If you wrap multiple times, only the innermost wrap
records the stack trace. Do not declare wrapped errors as global variables,
the recorded stack trace would be useless.

Once you have an error, %+v prints the full stack trace.
*/
package errors
