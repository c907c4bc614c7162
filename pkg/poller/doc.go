// Package poller provides the repeating timer that keeps the notification
// feed synchronized with the server of record. The default cadence is one
// tick per minute.
//
// The scheduler is an explicit object with Start/Stop and an injectable
// Clock, so both the cadence and the teardown behavior are testable with a
// fake clock. A Trigger method forces an out-of-band tick for callers that
// need a fetch sooner than the next cadence boundary.
//
// Ticks intentionally carry no overlap guard: a tick fires even while a
// previous fetch is still in flight. Consumers discard stale responses by
// generation number instead (see the inbox store).
package poller
