/*
Package weavetest provides helpers shared by the tests of all packages:
deterministic conditions and addresses, and sequence style identifiers.
*/
package weavetest
