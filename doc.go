/*
Package poolshare defines the common interfaces that tie together the
pooled-deposit distributor: authorization conditions and addresses,
transaction and message processing contracts, results with event tags,
and the key-value store abstraction that provides all-or-nothing
delivery semantics.

We pass context through context.Context between the application,
middleware and handlers. Poolshare defines common keys to store
information such as the chain ID, block height and logger. Each
extension, such as x/grant, may add its own keys to enrich the context
with specific data.

There should exist two functions for every XYZ of type T that we want
to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) T
*/
package poolshare
