// Package queue provides the durable store for outbound notifications awaiting
// multi-channel delivery.
//
// Each Notification moves through a small status machine:
//
//	pending -> processing -> sent
//	                      -> pending (retry scheduled via backoff)
//	                      -> failed  (retry attempts exhausted)
//
// The Storage interface encapsulates all persistence concerns. Two
// implementations ship with the package:
//
//   - MemoryStorage   — mutex-guarded map storage for tests and local runs
//   - PostgresStorage — pgx-backed storage for production deployments
//
// MarkProcessing is the concurrency control point: it performs the
// pending->processing transition as a single conditional update, so two
// overlapping batch sweeps can never claim the same record. No row locks are
// held across delivery attempts.
//
// # Usage
//
//	store := queue.NewMemoryStorage()
//	enq, err := queue.NewEnqueuer(store)
//	if err != nil {
//	    return err
//	}
//
//	id, err := enq.Enqueue(ctx, recipientID, "childcare_invoice",
//	    "Invoice ready", "Your January invoice is available.",
//	    queue.WithChannel(queue.ChannelBoth),
//	)
//
// Records are never deleted by delivery processing; PurgeOld applies the
// retention policy to terminal (sent/failed) records only.
//
// Package-level sentinel errors (e.g. ErrNotClaimable, ErrNotFound) signal
// violations of the status machine and can be checked with errors.Is.
package queue
