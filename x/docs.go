/*
Package x contains some standard extensions

Extensions implement common functionality (token ledger, grants,
vaults, distribution) and are intended to be used together with the
poolshare framework core.

This package contains the interfaces shared between extensions, most
importantly the Authenticator abstraction, so an extension never binds
to a concrete authentication implementation.
*/
package x
