package prefs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type prefKey struct {
	recipientID uuid.UUID
	notifType   string
}

// MemoryStorage implements Storage for testing and local development
type MemoryStorage struct {
	mu          sync.RWMutex
	preferences map[prefKey]*Preference
}

// NewMemoryStorage creates a new in-memory preference storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		preferences: make(map[prefKey]*Preference),
	}
}

// Get implements Storage
func (ms *MemoryStorage) Get(ctx context.Context, recipientID uuid.UUID, notifType string) (*Preference, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	pref, exists := ms.preferences[prefKey{recipientID, notifType}]
	if !exists {
		return nil, ErrNotFound
	}

	prefCopy := *pref
	return &prefCopy, nil
}

// Set implements Storage
func (ms *MemoryStorage) Set(ctx context.Context, pref Preference) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	pref.UpdatedAt = time.Now()
	ms.preferences[prefKey{pref.RecipientID, pref.Type}] = &pref

	return nil
}

// Delete implements Storage
func (ms *MemoryStorage) Delete(ctx context.Context, recipientID uuid.UUID, notifType string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.preferences, prefKey{recipientID, notifType})
	return nil
}

// DeleteAll implements Storage
func (ms *MemoryStorage) DeleteAll(ctx context.Context, recipientID uuid.UUID) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	deleted := 0
	for key := range ms.preferences {
		if key.recipientID == recipientID {
			delete(ms.preferences, key)
			deleted++
		}
	}

	return deleted, nil
}

// List implements Storage
func (ms *MemoryStorage) List(ctx context.Context, recipientID uuid.UUID) ([]Preference, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var prefs []Preference
	for key, pref := range ms.preferences {
		if key.recipientID == recipientID {
			prefs = append(prefs, *pref)
		}
	}

	return prefs, nil
}
