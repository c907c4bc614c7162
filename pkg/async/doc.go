// Package async provides a small Future abstraction for fire-and-forget
// work whose outcome still matters, such as confirming an optimistic
// mutation against the server after local state has already been updated.
package async
