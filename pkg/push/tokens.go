package push

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeviceToken associates a push token with a recipient
type DeviceToken struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenStore manages device token registration for push delivery
type TokenStore interface {
	// Register stores a device token for the recipient. Re-registering an
	// existing token is a no-op.
	Register(ctx context.Context, recipientID uuid.UUID, token string) error

	// TokensFor returns all device tokens registered for the recipient.
	TokensFor(ctx context.Context, recipientID uuid.UUID) ([]string, error)

	// Remove deletes the given tokens from the registry, regardless of
	// recipient. Returns the number of tokens removed.
	Remove(ctx context.Context, tokens ...string) (int, error)
}

// MemoryTokenStore implements TokenStore for testing and local development
type MemoryTokenStore struct {
	mu          sync.RWMutex
	byRecipient map[uuid.UUID][]string
	owner       map[string]uuid.UUID
}

// NewMemoryTokenStore creates a new in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		byRecipient: make(map[uuid.UUID][]string),
		owner:       make(map[string]uuid.UUID),
	}
}

// Register implements TokenStore
func (ms *MemoryTokenStore) Register(ctx context.Context, recipientID uuid.UUID, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.owner[token]; exists {
		return nil
	}

	ms.owner[token] = recipientID
	ms.byRecipient[recipientID] = append(ms.byRecipient[recipientID], token)

	return nil
}

// TokensFor implements TokenStore
func (ms *MemoryTokenStore) TokensFor(ctx context.Context, recipientID uuid.UUID) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return slices.Clone(ms.byRecipient[recipientID]), nil
}

// Remove implements TokenStore
func (ms *MemoryTokenStore) Remove(ctx context.Context, tokens ...string) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	removed := 0
	for _, token := range tokens {
		recipientID, exists := ms.owner[token]
		if !exists {
			continue
		}
		delete(ms.owner, token)
		ms.byRecipient[recipientID] = slices.DeleteFunc(ms.byRecipient[recipientID], func(t string) bool {
			return t == token
		})
		removed++
	}

	return removed, nil
}
