/*
Package token implements a movable-balance ledger.

Balances are kept per (ticker, account) pair in the key-value store.
The Controller gives raw access to balance bookkeeping and is meant to
be used by other extensions. The GuardedMover wraps the controller with
an authorization check: a transfer is executed only when the source
account signed the transaction, or a one-time grant covers the exact
transfer tuple.

The package also exposes a SendMsg handler so the ledger can be used as
a standalone extension.
*/
package token
