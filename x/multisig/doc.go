/*
Package multisig implements a wallet governed by a set of owners.

Any owner can propose a transaction: a call into another contract together
with the value to transfer and the gas limit. The transaction is executed as
soon as the number of approvals reaches the threshold and removed without
execution once so many owners rejected it that the threshold cannot be
reached anymore. The owner set and the threshold can only be changed by the
wallet itself, that is by an approved transaction calling back into the
wallet.

The Controller implements all operations on top of a key value store. The
Handler exposes the Controller as a contract with one selector per message.
Calls to other contracts are dispatched through a Host.
*/
package multisig
