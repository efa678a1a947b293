/*
Package poolsharetest provides mocks and helpers for testing code that
is using the poolshare framework. All implementations here are kept
minimal and deterministic, so the tests stay readable.
*/
package poolsharetest
