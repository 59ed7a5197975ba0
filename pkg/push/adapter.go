package push

import (
	"context"
	"errors"
	"sync"

	"github.com/campuskit/notify/pkg/delivery"
	"github.com/campuskit/notify/pkg/queue"
)

// Adapter delivers queued notifications to all of a recipient's registered
// devices. A recipient with no devices yields a skip; delivery counts as
// sent when at least one device accepts the message. Tokens the transport
// rejects as invalid are collected for post-batch registry cleanup.
type Adapter struct {
	sender Sender
	tokens TokenStore

	mu      sync.Mutex
	invalid []string
}

// NewAdapter creates a push delivery adapter
func NewAdapter(sender Sender, tokens TokenStore) (*Adapter, error) {
	if sender == nil {
		return nil, ErrSenderNil
	}
	if tokens == nil {
		return nil, ErrTokenStoreNil
	}
	return &Adapter{sender: sender, tokens: tokens}, nil
}

// Send delivers one notification to every device registered for the
// recipient. Only the notification title, message and type cross the
// transport boundary.
func (a *Adapter) Send(ctx context.Context, notif *queue.Notification) (delivery.Result, error) {
	deviceTokens, err := a.tokens.TokensFor(ctx, notif.RecipientID)
	if err != nil {
		return delivery.ResultFailed, err
	}

	if len(deviceTokens) == 0 {
		return delivery.ResultSkipped, nil
	}

	var (
		delivered bool
		lastErr   error
	)
	for _, token := range deviceTokens {
		err := a.sender.SendPush(ctx, Message{
			Token: token,
			Title: notif.Title,
			Body:  notif.Message,
			Type:  notif.Type,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				a.recordInvalidToken(token)
				continue
			}
			lastErr = err
			continue
		}
		delivered = true
	}

	if delivered {
		return delivery.ResultSent, nil
	}
	if lastErr != nil {
		return delivery.ResultFailed, lastErr
	}

	// Every token was invalid; nothing deliverable remains for this
	// recipient, which is a skip rather than a transport failure
	return delivery.ResultSkipped, nil
}

// InvalidTokens drains the collected invalid tokens. Callers should remove
// them from the TokenStore after each batch.
func (a *Adapter) InvalidTokens() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	tokens := a.invalid
	a.invalid = nil
	return tokens
}

// CleanupInvalidTokens removes all collected invalid tokens from the
// registry. Returns the number of tokens removed.
func (a *Adapter) CleanupInvalidTokens(ctx context.Context) (int, error) {
	tokens := a.InvalidTokens()
	if len(tokens) == 0 {
		return 0, nil
	}
	return a.tokens.Remove(ctx, tokens...)
}

func (a *Adapter) recordInvalidToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.invalid = append(a.invalid, token)
}
