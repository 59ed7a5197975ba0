package push_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/notify/pkg/delivery"
	"github.com/campuskit/notify/pkg/push"
	"github.com/campuskit/notify/pkg/queue"
)

// fakeSender rejects tokens listed in invalid, errors on tokens listed in
// failing, and records everything it accepted.
type fakeSender struct {
	invalid  map[string]bool
	failing  map[string]bool
	accepted []push.Message
}

func (f *fakeSender) SendPush(ctx context.Context, msg push.Message) error {
	if f.invalid[msg.Token] {
		return fmt.Errorf("%w: %s", push.ErrInvalidToken, msg.Token)
	}
	if f.failing[msg.Token] {
		return errors.New("transport unavailable")
	}
	f.accepted = append(f.accepted, msg)
	return nil
}

func pushNotification(recipientID uuid.UUID) *queue.Notification {
	return &queue.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        "absence_alert",
		Channel:     queue.ChannelPush,
		Title:       "Absence recorded",
		Message:     "Marked absent this morning.",
	}
}

func TestNewAdapter(t *testing.T) {
	t.Parallel()

	_, err := push.NewAdapter(nil, push.NewMemoryTokenStore())
	assert.ErrorIs(t, err, push.ErrSenderNil)

	_, err = push.NewAdapter(&fakeSender{}, nil)
	assert.ErrorIs(t, err, push.ErrTokenStoreNil)
}

func TestAdapter_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no registered devices is a skip", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		adapter, err := push.NewAdapter(sender, push.NewMemoryTokenStore())
		require.NoError(t, err)

		result, err := adapter.Send(ctx, pushNotification(uuid.New()))
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSkipped, result)
		assert.Empty(t, sender.accepted)
	})

	t.Run("delivers to every device", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		store := push.NewMemoryTokenStore()
		require.NoError(t, store.Register(ctx, recipient, "device-1"))
		require.NoError(t, store.Register(ctx, recipient, "device-2"))

		sender := &fakeSender{}
		adapter, err := push.NewAdapter(sender, store)
		require.NoError(t, err)

		notif := pushNotification(recipient)
		result, err := adapter.Send(ctx, notif)
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSent, result)
		require.Len(t, sender.accepted, 2)
		assert.Equal(t, notif.Title, sender.accepted[0].Title)
		assert.Equal(t, notif.Message, sender.accepted[0].Body)
		assert.Equal(t, notif.Type, sender.accepted[0].Type)
	})

	t.Run("one accepting device is enough", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		store := push.NewMemoryTokenStore()
		require.NoError(t, store.Register(ctx, recipient, "stale"))
		require.NoError(t, store.Register(ctx, recipient, "broken"))
		require.NoError(t, store.Register(ctx, recipient, "good"))

		sender := &fakeSender{
			invalid: map[string]bool{"stale": true},
			failing: map[string]bool{"broken": true},
		}
		adapter, err := push.NewAdapter(sender, store)
		require.NoError(t, err)

		result, err := adapter.Send(ctx, pushNotification(recipient))
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSent, result)
	})

	t.Run("transport failure with no delivery fails", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		store := push.NewMemoryTokenStore()
		require.NoError(t, store.Register(ctx, recipient, "broken"))

		sender := &fakeSender{failing: map[string]bool{"broken": true}}
		adapter, err := push.NewAdapter(sender, store)
		require.NoError(t, err)

		result, err := adapter.Send(ctx, pushNotification(recipient))
		require.Error(t, err)
		assert.Equal(t, delivery.ResultFailed, result)
	})

	t.Run("all tokens invalid is a skip", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		store := push.NewMemoryTokenStore()
		require.NoError(t, store.Register(ctx, recipient, "stale-1"))
		require.NoError(t, store.Register(ctx, recipient, "stale-2"))

		sender := &fakeSender{invalid: map[string]bool{"stale-1": true, "stale-2": true}}
		adapter, err := push.NewAdapter(sender, store)
		require.NoError(t, err)

		result, err := adapter.Send(ctx, pushNotification(recipient))
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSkipped, result)
		assert.ElementsMatch(t, []string{"stale-1", "stale-2"}, adapter.InvalidTokens())
	})
}

func TestAdapter_CleanupInvalidTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recipient := uuid.New()

	store := push.NewMemoryTokenStore()
	require.NoError(t, store.Register(ctx, recipient, "stale"))
	require.NoError(t, store.Register(ctx, recipient, "good"))

	sender := &fakeSender{invalid: map[string]bool{"stale": true}}
	adapter, err := push.NewAdapter(sender, store)
	require.NoError(t, err)

	_, err = adapter.Send(ctx, pushNotification(recipient))
	require.NoError(t, err)

	removed, err := adapter.CleanupInvalidTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	tokens, err := store.TokensFor(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, tokens)

	// Drained: a second cleanup has nothing to remove
	removed, err = adapter.CleanupInvalidTokens(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMemoryTokenStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("register and list", func(t *testing.T) {
		t.Parallel()

		store := push.NewMemoryTokenStore()
		recipient := uuid.New()

		require.NoError(t, store.Register(ctx, recipient, "device-1"))
		require.NoError(t, store.Register(ctx, recipient, "device-2"))

		tokens, err := store.TokensFor(ctx, recipient)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"device-1", "device-2"}, tokens)
	})

	t.Run("re-registering is a no-op", func(t *testing.T) {
		t.Parallel()

		store := push.NewMemoryTokenStore()
		recipient := uuid.New()

		require.NoError(t, store.Register(ctx, recipient, "device-1"))
		require.NoError(t, store.Register(ctx, recipient, "device-1"))

		tokens, err := store.TokensFor(ctx, recipient)
		require.NoError(t, err)
		assert.Len(t, tokens, 1)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()

		store := push.NewMemoryTokenStore()
		assert.ErrorIs(t, store.Register(ctx, uuid.New(), ""), push.ErrEmptyToken)
	})

	t.Run("remove counts only known tokens", func(t *testing.T) {
		t.Parallel()

		store := push.NewMemoryTokenStore()
		recipient := uuid.New()
		require.NoError(t, store.Register(ctx, recipient, "device-1"))

		removed, err := store.Remove(ctx, "device-1", "never-registered")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		tokens, err := store.TokensFor(ctx, recipient)
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
}
