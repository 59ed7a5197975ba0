package queue

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage implements Storage for testing and local development
type MemoryStorage struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]*Notification

	// Status index for efficient pending scans
	byStatus map[Status][]uuid.UUID
}

// NewMemoryStorage creates a new in-memory storage implementation
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[uuid.UUID]*Notification),
		byStatus:      make(map[Status][]uuid.UUID),
	}
}

// Enqueue implements Storage
func (ms *MemoryStorage) Enqueue(ctx context.Context, notif *Notification) (uuid.UUID, error) {
	if notif == nil {
		return uuid.Nil, ErrNotificationNil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Clone to prevent external modification, forcing the initial state
	// regardless of caller-supplied status or counters
	stored := *notif
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	} else if _, exists := ms.notifications[stored.ID]; exists {
		return uuid.Nil, ErrDuplicateID
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.Status = StatusPending
	stored.Attempts = 0
	stored.LastAttemptAt = nil
	stored.ErrorMessage = nil

	ms.notifications[stored.ID] = &stored
	ms.byStatus[StatusPending] = append(ms.byStatus[StatusPending], stored.ID)

	return stored.ID, nil
}

// Get implements Storage
func (ms *MemoryStorage) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	notif, exists := ms.notifications[id]
	if !exists {
		return nil, ErrNotFound
	}

	notifCopy := *notif
	return &notifCopy, nil
}

// SelectPending implements Storage
func (ms *MemoryStorage) SelectPending(ctx context.Context, limit, maxAttempts int) ([]Notification, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var candidates []Notification
	for _, id := range ms.byStatus[StatusPending] {
		notif := ms.notifications[id]
		if notif.Attempts >= maxAttempts {
			continue
		}
		candidates = append(candidates, *notif)
	}

	// Oldest-created-first to preserve fairness across sweeps
	slices.SortFunc(candidates, func(a, b Notification) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// SelectPendingRetry implements Storage
func (ms *MemoryStorage) SelectPendingRetry(ctx context.Context, minRetryDelay time.Duration) ([]Notification, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	cutoff := time.Now().Add(-minRetryDelay)

	var candidates []Notification
	for _, id := range ms.byStatus[StatusPending] {
		notif := ms.notifications[id]
		if notif.Attempts == 0 || notif.LastAttemptAt == nil {
			continue
		}
		if notif.LastAttemptAt.After(cutoff) {
			continue
		}
		candidates = append(candidates, *notif)
	}

	slices.SortFunc(candidates, func(a, b Notification) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return candidates, nil
}

// MarkProcessing implements Storage.
// The check-and-transition happens under the write lock, matching the
// single-conditional-update semantics a SQL storage provides.
func (ms *MemoryStorage) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	notif, exists := ms.notifications[id]
	if !exists {
		return ErrNotFound
	}

	if notif.Status != StatusPending {
		return ErrNotClaimable
	}

	notif.Status = StatusProcessing
	ms.removeFromStatusIndex(id, StatusPending)
	ms.byStatus[StatusProcessing] = append(ms.byStatus[StatusProcessing], id)

	return nil
}

// MarkSent implements Storage
func (ms *MemoryStorage) MarkSent(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	notif, exists := ms.notifications[id]
	if !exists {
		return ErrNotFound
	}

	// Idempotent terminal state
	if notif.Status == StatusSent {
		return nil
	}

	prevStatus := notif.Status
	notif.Status = StatusSent
	ms.removeFromStatusIndex(id, prevStatus)
	ms.byStatus[StatusSent] = append(ms.byStatus[StatusSent], id)

	return nil
}

// MarkFailed implements Storage
func (ms *MemoryStorage) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string, maxAttempts int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	notif, exists := ms.notifications[id]
	if !exists {
		return ErrNotFound
	}

	now := time.Now()
	prevStatus := notif.Status
	notif.Attempts++
	notif.LastAttemptAt = &now
	notif.ErrorMessage = &errorMsg

	if notif.Attempts >= maxAttempts {
		notif.Status = StatusFailed
	} else {
		// Back to pending, eligible again once the backoff window elapses
		notif.Status = StatusPending
	}

	if prevStatus != notif.Status {
		ms.removeFromStatusIndex(id, prevStatus)
		ms.byStatus[notif.Status] = append(ms.byStatus[notif.Status], id)
	}

	return nil
}

// PurgeOld implements Storage
func (ms *MemoryStorage) PurgeOld(ctx context.Context, retention time.Duration) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cutoff := time.Now().Add(-retention)
	purged := 0

	for id, notif := range ms.notifications {
		if notif.Status != StatusSent && notif.Status != StatusFailed {
			continue
		}
		if notif.CreatedAt.After(cutoff) {
			continue
		}
		ms.removeFromStatusIndex(id, notif.Status)
		delete(ms.notifications, id)
		purged++
	}

	return purged, nil
}

// Statistics implements Storage
func (ms *MemoryStorage) Statistics(ctx context.Context) (Statistics, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return Statistics{
		Pending:    len(ms.byStatus[StatusPending]),
		Processing: len(ms.byStatus[StatusProcessing]),
		Sent:       len(ms.byStatus[StatusSent]),
		Failed:     len(ms.byStatus[StatusFailed]),
		Total:      len(ms.notifications),
	}, nil
}

func (ms *MemoryStorage) removeFromStatusIndex(id uuid.UUID, status Status) {
	ms.byStatus[status] = slices.DeleteFunc(ms.byStatus[status], func(existing uuid.UUID) bool {
		return existing == id
	})
}
