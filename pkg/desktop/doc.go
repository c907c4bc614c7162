// Package desktop raises native system notifications when new items arrive
// in the feed. It is strictly best effort: permission is requested lazily on
// the first interaction with the notification affordance, denial disables
// the channel silently, and delivery failures are logged and forgotten.
//
// At most one system notification is raised per observed increase of the
// unread count, carrying the newest unread item's message, regardless of
// how many items arrived in the same poll.
package desktop
