// Package requestid provides request identifier propagation for HTTP
// services: a middleware that assigns ids, context accessors, and a
// logger extractor so every log line within a request carries its id.
package requestid
