/*
Package errors implements custom error interfaces for poolshare.

The package is built around registered root errors. Each root error
represents a class of failures and carries a unique code. Errors created
during runtime should always wrap one of the root errors, so that the
class of an error can be tested with the root's Is method without
inspecting error messages.

Wrapping attaches a stack trace to the lowest frame possible, which makes
debugging aborted invocations cheap without polluting the message that is
returned to the caller.
*/
package errors
