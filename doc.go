/*
Package xsigners defines the interfaces shared by the ledger, the storage
layer and the extensions: key value stores, addresses, calls between
contracts, events and the context keys used to pass the caller and contract
identity down a call.

We pass context through context.Context between the ledger and the
contracts it dispatches to. There should exist two functions for every XYZ
of type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

The actual multisig engine lives in x/multisig, the development ledger that
hosts it in app.
*/
package xsigners
