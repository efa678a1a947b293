/*
Package vault models the external yield-bearing pool.

A vault accepts deposits of a single underlying asset and mints claim
units in exchange, at a rate the vault alone determines. Claim units
are regular token ledger balances, so they can be moved with the same
transfer capability as any other token.

The Vault interface is what the distributor binds to. SingleAssetVault
is a reference implementation backed by the token ledger, with a
variable exchange rate derived from its reserves and the outstanding
claim unit supply.
*/
package vault
