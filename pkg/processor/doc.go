// Package processor runs bounded delivery sweeps over the notification
// queue.
//
// A Processor is invoked periodically by an external scheduler (cron or a
// CLI wrapper); each ProcessBatch call handles at most one batch and
// returns. The sweep:
//
//  1. resolves max attempts, base retry delay and batch size from the
//     settings provider, once per run
//  2. selects pending candidates below the attempt ceiling, oldest first
//  3. per record: checks delivery eligibility, claims it via the storage's
//     conditional pending->processing transition, resolves the effective
//     channel against recipient preferences, invokes the email and/or push
//     adapter, reconciles the per-channel results, and marks the record
//     sent or failed
//
// Records are processed through a bounded worker pool with isolated error
// handling: one slow or failing transport call never blocks or corrupts the
// rest of the batch, and individual failures surface only in the returned
// Report, never as errors from ProcessBatch.
//
// Overlapping sweeps are tolerated by design. The conditional claim means a
// record can only be in flight in one sweep at a time; losing the claim race
// is silent and harmless.
//
// WithDryRun produces a report of what the sweep would do without touching
// storage or transports.
package processor
