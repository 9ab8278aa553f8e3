// Package schedule runs one cancellable single-shot timer per pending
// reminder.
//
// Spawn computes the remaining delay and suspends until due. On waking,
// the wait-task delivers the message through a Notifier exactly once and
// then removes the reminder from the store whether or not delivery
// succeeded. Cancel stops a live timer without touching the store.
package schedule
