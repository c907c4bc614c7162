// Package apiclient implements the HTTP client for the notification server
// of record. It is deliberately stateless: each method performs exactly one
// round trip and reports the outcome, leaving caching, optimism, and retry
// policy to the inbox layer.
//
// Failures are split into two kinds: *RequestError when the server answered
// with a non-success status (the server's own message is preserved), and
// *TransportError when the server could not be reached at all. The inbox
// treats both the same way for rollback purposes but surfaces different
// notices to the user.
package apiclient
