/*
Package grant implements single-use delegated authorizations.

A handler that initiates a downstream operation on behalf of an account
it controls (for example a custody account derived from a condition)
issues a grant naming the target capability and the exact argument
tuple. The downstream service consumes the grant when executing the
operation. Each grant covers exactly one invocation and is not
reusable.

Grants live only for the duration of a single delivery. They are
carried through the context, never persisted.
*/
package grant
