/*
Package cash keeps native token balances of accounts and contracts.

Every address holds a single unsigned balance. Funds are created with Issue,
usually from the genesis file, and moved with Transfer. Contracts move funds
through the ledger they are deployed on, never by writing balances directly.
*/
package cash
