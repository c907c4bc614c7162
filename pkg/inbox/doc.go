// Package inbox implements the client side of the notification center: the
// canonical per-user store, the unread badge, bulk selection, and the Inbox
// orchestrator that ties them to the sync client and polling scheduler.
//
// # Reconciliation
//
// The store is eventually consistent with the server of record. Every fetch
// takes a generation number before hitting the network; Replace applies a
// response only when it carries the latest issued generation, so overlapping
// polls cannot overwrite newer state with an older snapshot. A successful
// fetch replaces the list wholesale and adopts the server's unread count.
//
// # Optimistic mutations
//
// Mark-read and delete apply locally before the network call resolves, so
// the UI never waits on latency to show read state. Confirmation happens on
// a background goroutine; a rejected or unreachable write rolls the local
// change back and emits a user-visible notice. The rollback policy is
// uniform across all write operations. No write is retried automatically —
// the user re-triggers the action or the next poll reconciles.
//
// # Read-on-view
//
// Opening the surface marks every visible unread notification read with a
// single batched call. This is a product decision: unread tracks whether
// the user has seen the feed, not whether they clicked an item.
//
// # Threading
//
// The store serializes all access with a mutex, and late responses are
// discarded by generation, so the inbox is safe to drive from any
// goroutine even though the intended consumer is a single UI loop.
package inbox
