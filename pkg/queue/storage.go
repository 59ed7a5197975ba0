package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage handles durable persistence of queued notifications.
//
// MarkProcessing is the mutual-exclusion point for concurrent batch sweeps:
// implementations must perform the pending->processing transition as a single
// conditional update so that at most one sweep claims any given record.
type Storage interface {
	// Enqueue stores a new notification. Status is forced to pending and
	// the attempt counter to zero regardless of caller-supplied values.
	// Returns ErrDuplicateID when a caller-supplied ID already exists.
	Enqueue(ctx context.Context, notif *Notification) (uuid.UUID, error)

	// Get retrieves a single notification by ID.
	Get(ctx context.Context, id uuid.UUID) (*Notification, error)

	// SelectPending returns pending notifications with attempts below
	// maxAttempts, oldest-created-first, capped at limit.
	SelectPending(ctx context.Context, limit, maxAttempts int) ([]Notification, error)

	// SelectPendingRetry returns pending notifications that have been
	// attempted at least once and whose last attempt is older than
	// minRetryDelay. Used for targeted retry sweeps.
	SelectPendingRetry(ctx context.Context, minRetryDelay time.Duration) ([]Notification, error)

	// MarkProcessing atomically transitions pending -> processing.
	// Returns ErrNotClaimable if the record is not pending.
	MarkProcessing(ctx context.Context, id uuid.UUID) error

	// MarkSent transitions the record to terminal sent status.
	// Idempotent: marking an already sent record is a no-op.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// MarkFailed records a failed attempt: increments attempts, stamps
	// lastAttemptAt and errorMessage. The record becomes terminally failed
	// once attempts reach maxAttempts, otherwise returns to pending for
	// a later retry.
	MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string, maxAttempts int) error

	// PurgeOld deletes sent and failed records older than the retention
	// threshold. Pending and processing records are never purged.
	PurgeOld(ctx context.Context, retention time.Duration) (int, error)

	// Statistics returns aggregate queue counters.
	Statistics(ctx context.Context) (Statistics, error)
}
