// Package delivery implements the rules that decide when and how a queued
// notification is delivered.
//
// Everything in the package is pure computation over already-fetched state:
// no storage access, no clock ownership (callers pass time.Now()), no
// blocking. That keeps the retry, eligibility and health logic trivially
// testable and safe to call from concurrent batch sweeps.
//
// Three groups of rules live here:
//
//   - Retry/backoff: RetryDelay doubles the base delay with every attempt
//     (base, 2x, 4x, ...); ShouldAttemptDelivery gates the batch processor.
//   - Channel resolution: ResolveChannel degrades a requested channel
//     against recipient preferences, and Reconcile folds the per-channel
//     three-way results (sent/skipped/failed) into one record outcome.
//     Preference skips are never failures.
//   - Health: AssessHealth classifies aggregate counters into
//     healthy/warning/critical with actionable recommendations.
package delivery
