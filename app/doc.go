/*
Package app is a minimal in-process ledger that contracts run on.

The ledger keeps a registry of contract codes and deployed instances. Every
call runs on its own cache layer over the caller's state and inside its own
gas budget. A successful call commits its writes and events into the
caller's layer, a failed one leaves no trace.

Contracts reach the ledger through the context they are called with and
through the Host methods: Invoke to call another contract, Transfer to move
funds and Emit to publish events.
*/
package app
