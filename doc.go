/*
Package fibon defines all common interfaces that tie together the various
subpackages of the Fibon token custody suite, as well as implementations of
some of the simpler components (when interfaces would be too much overhead).

The suite is a deterministic message/handler state machine over a key-value
store. A host (consensus engine, test harness, simulation driver) supplies
the serialized total order of transactions and the block clock through the
context; every handler runs to completion atomically with respect to all
others.

We pass context through context.Context between app, middleware, and
handlers. To do so, this package defines some common keys to store info, such
as block height and chain id. Each extension, such as x/multisig, may add its
own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package fibon
