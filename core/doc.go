// Package core provides the HTTP response vocabulary shared by API
// handlers: typed HTTP errors with stable machine-readable codes, and
// JSON writers producing the uniform error envelope
// {"error":{"code":"...","message":"..."}}.
package core
