package prefs_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/notify/pkg/prefs"
)

func newTestService(t *testing.T) (*prefs.Service, *prefs.MemoryStorage) {
	t.Helper()

	store := prefs.NewMemoryStorage()
	catalog := prefs.NewStaticCatalog(
		prefs.Template{Type: "childcare_invoice", DisplayName: "Childcare invoice"},
		prefs.Template{Type: "overdue_loan", DisplayName: "Overdue library loan"},
		prefs.Template{Type: "absence_alert", DisplayName: "Absence alert"},
	)

	svc, err := prefs.NewService(store, catalog)
	require.NoError(t, err)
	return svc, store
}

func TestNewService(t *testing.T) {
	t.Parallel()

	catalog := prefs.NewStaticCatalog()

	_, err := prefs.NewService(nil, catalog)
	assert.ErrorIs(t, err, prefs.ErrStorageNil)

	_, err = prefs.NewService(prefs.NewMemoryStorage(), nil)
	assert.ErrorIs(t, err, prefs.ErrCatalogNil)
}

func TestService_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()

		require.NoError(t, svc.Set(ctx, recipient, "overdue_loan", true, false))

		pref, err := svc.Get(ctx, recipient, "overdue_loan")
		require.NoError(t, err)
		assert.True(t, pref.EmailEnabled)
		assert.False(t, pref.PushEnabled)
		assert.False(t, pref.UpdatedAt.IsZero())
	})

	t.Run("absent pair returns not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		_, err := svc.Get(ctx, uuid.New(), "overdue_loan")
		assert.ErrorIs(t, err, prefs.ErrNotFound)
	})

	t.Run("rejects disabling both channels", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		err := svc.Set(ctx, uuid.New(), "overdue_loan", false, false)
		assert.ErrorIs(t, err, prefs.ErrNoChannelEnabled)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		err := svc.Set(ctx, uuid.New(), "lottery_win", true, true)
		assert.ErrorIs(t, err, prefs.ErrUnknownType)
	})

	t.Run("rejects missing recipient", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		err := svc.Set(ctx, uuid.Nil, "overdue_loan", true, true)
		assert.ErrorIs(t, err, prefs.ErrMissingRecipient)
	})
}

func TestService_EffectiveToggles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("default to enabled when no record exists", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()

		email, err := svc.IsEmailEnabled(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.True(t, email)

		push, err := svc.IsPushEnabled(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.True(t, push)

		pair, err := svc.Channels(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.Equal(t, prefs.ChannelPair{EmailEnabled: true, PushEnabled: true}, pair)
	})

	t.Run("stored record wins over the default", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()
		require.NoError(t, svc.Set(ctx, recipient, "absence_alert", false, true))

		email, err := svc.IsEmailEnabled(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.False(t, email)

		pair, err := svc.Channels(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.Equal(t, prefs.ChannelPair{EmailEnabled: false, PushEnabled: true}, pair)
	})

	t.Run("preference is scoped per type", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()
		require.NoError(t, svc.Set(ctx, recipient, "absence_alert", true, false))

		pair, err := svc.Channels(ctx, recipient, "overdue_loan")
		require.NoError(t, err)
		assert.Equal(t, prefs.ChannelPair{EmailEnabled: true, PushEnabled: true}, pair)
	})
}

func TestService_ResetAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	recipient := uuid.New()

	require.NoError(t, svc.Set(ctx, recipient, "absence_alert", true, false))
	require.NoError(t, svc.Set(ctx, recipient, "overdue_loan", false, true))

	// Another recipient's records must survive the reset
	other := uuid.New()
	require.NoError(t, svc.Set(ctx, other, "absence_alert", true, false))

	deleted, err := svc.ResetAll(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	pair, err := svc.Channels(ctx, recipient, "absence_alert")
	require.NoError(t, err)
	assert.Equal(t, prefs.ChannelPair{EmailEnabled: true, PushEnabled: true}, pair)

	_, err = svc.Get(ctx, other, "absence_alert")
	assert.NoError(t, err)
}

func TestService_BulkSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	recipient := uuid.New()

	results, err := svc.BulkSet(ctx, recipient, map[string]prefs.ChannelPair{
		"absence_alert": {EmailEnabled: true, PushEnabled: false},
		"overdue_loan":  {EmailEnabled: false, PushEnabled: true},
		"lottery_win":   {EmailEnabled: true, PushEnabled: true},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results["absence_alert"])
	assert.NoError(t, results["overdue_loan"])
	assert.ErrorIs(t, results["lottery_win"], prefs.ErrUnknownType)

	// Valid entries commit despite the invalid one
	pair, err := svc.Channels(ctx, recipient, "overdue_loan")
	require.NoError(t, err)
	assert.Equal(t, prefs.ChannelPair{EmailEnabled: false, PushEnabled: true}, pair)
}

func TestService_DisableAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sweeps the full catalog by default", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()

		results, err := svc.DisableAll(ctx, recipient)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for notifType, setErr := range results {
			assert.NoError(t, setErr, "type %s", notifType)
		}

		// The sweep is the one path allowed to store both-disabled
		pair, err := svc.Channels(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.Equal(t, prefs.ChannelPair{}, pair)
	})

	t.Run("explicit types limit the sweep", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		recipient := uuid.New()

		results, err := svc.DisableAll(ctx, recipient, "overdue_loan")
		require.NoError(t, err)
		require.Len(t, results, 1)

		pair, err := svc.Channels(ctx, recipient, "absence_alert")
		require.NoError(t, err)
		assert.Equal(t, prefs.ChannelPair{EmailEnabled: true, PushEnabled: true}, pair)
	})

	t.Run("explicit types are validated against the catalog", func(t *testing.T) {
		t.Parallel()

		svc, store := newTestService(t)
		recipient := uuid.New()

		results, err := svc.DisableAll(ctx, recipient, "overdue_loan", "lottery_win")
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.NoError(t, results["overdue_loan"])
		assert.ErrorIs(t, results["lottery_win"], prefs.ErrUnknownType)

		// Nothing gets stored for a type outside the catalog
		_, err = store.Get(ctx, recipient, "lottery_win")
		assert.ErrorIs(t, err, prefs.ErrNotFound)

		pref, err := store.Get(ctx, recipient, "overdue_loan")
		require.NoError(t, err)
		assert.False(t, pref.EmailEnabled)
		assert.False(t, pref.PushEnabled)
	})
}

func TestService_EnableAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)
	recipient := uuid.New()

	_, err := svc.DisableAll(ctx, recipient)
	require.NoError(t, err)

	results, err := svc.EnableAll(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, results, 3)

	pair, err := svc.Channels(ctx, recipient, "childcare_invoice")
	require.NoError(t, err)
	assert.Equal(t, prefs.ChannelPair{EmailEnabled: true, PushEnabled: true}, pair)
}
