/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of model, addressed by a primary key.

Models are serialized with protobuf. Every stored value is prefixed with
a single schema version byte, so that even a model with all fields set
to their zero values is distinguishable from a missing entry.
*/
package orm
