package delivery

import (
	"math"
	"time"

	"github.com/campuskit/notify/pkg/queue"
)

// RetryDelay returns the backoff delay preceding the given attempt.
// The delay doubles with each attempt: attempt 1 waits base, attempt 2 waits
// 2x base, attempt 3 waits 4x base. Computed arithmetically so arbitrary
// attempt counts are supported; once doubling would overflow time.Duration
// the delay saturates at the maximum representable duration.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 || base <= 0 {
		return 0
	}
	shift := uint(attempt - 1)
	if shift >= 63 || base > time.Duration(math.MaxInt64)>>shift {
		return time.Duration(math.MaxInt64)
	}
	return base << shift
}

// NextRetryAt returns the earliest time the notification may be attempted
// again, based on its current attempt count. Returns nil for records that
// have never been attempted: those are immediately eligible.
func NextRetryAt(notif *queue.Notification, base time.Duration) *time.Time {
	if notif.Attempts == 0 || notif.LastAttemptAt == nil {
		return nil
	}
	next := notif.LastAttemptAt.Add(RetryDelay(base, notif.Attempts))
	return &next
}

// IsReadyForRetry reports whether enough time has passed since the last
// attempt. Never-attempted records are always ready.
func IsReadyForRetry(notif *queue.Notification, base time.Duration, now time.Time) bool {
	next := NextRetryAt(notif, base)
	if next == nil {
		return true
	}
	return !now.Before(*next)
}

// HasExhaustedRetries reports whether the notification has used all allowed
// delivery attempts and must not be retried again.
func HasExhaustedRetries(notif *queue.Notification, maxAttempts int) bool {
	return notif.Attempts >= maxAttempts
}

// ShouldAttemptDelivery reports whether the batch processor should pick up
// this record: it must be pending, not exhausted, and past its backoff window.
// Records failing any of these checks are skipped without modification.
func ShouldAttemptDelivery(notif *queue.Notification, maxAttempts int, base time.Duration, now time.Time) bool {
	if notif.Status != queue.StatusPending {
		return false
	}
	if HasExhaustedRetries(notif, maxAttempts) {
		return false
	}
	return IsReadyForRetry(notif, base, now)
}
