/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Every package keeps at most one configuration object, stored under a key
derived from the package name. A configuration can be loaded from the "conf"
section of the genesis file:

	"conf": {
	  "ledger": {"read_cost": 10, "write_cost": 100, "byte_cost": 1}
	}

Configuration objects are protobuf messages that validate themselves.
*/
package gconf
