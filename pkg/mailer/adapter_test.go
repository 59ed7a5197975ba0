package mailer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/notify/pkg/delivery"
	"github.com/campuskit/notify/pkg/mailer"
	"github.com/campuskit/notify/pkg/queue"
)

type fakeDirectory struct {
	addresses map[uuid.UUID]string
	err       error
}

func (f *fakeDirectory) EmailAddress(ctx context.Context, recipientID uuid.UUID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	address, ok := f.addresses[recipientID]
	if !ok {
		return "", mailer.ErrNoContact
	}
	return address, nil
}

type fakeEmailSender struct {
	sent []mailer.SendEmailParams
	err  error
}

func (f *fakeEmailSender) SendEmail(ctx context.Context, params mailer.SendEmailParams) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, params)
	return nil
}

func emailNotification(recipientID uuid.UUID) *queue.Notification {
	return &queue.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        "childcare_invoice",
		Channel:     queue.ChannelEmail,
		Title:       "Invoice ready",
		Message:     "Your invoice for March is available.",
	}
}

func TestNewAdapter(t *testing.T) {
	t.Parallel()

	_, err := mailer.NewAdapter(nil, &fakeDirectory{})
	assert.ErrorIs(t, err, mailer.ErrSenderNil)

	_, err = mailer.NewAdapter(&fakeEmailSender{}, nil)
	assert.ErrorIs(t, err, mailer.ErrDirectoryNil)
}

func TestAdapter_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("delivers to the resolved address", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		sender := &fakeEmailSender{}
		directory := &fakeDirectory{addresses: map[uuid.UUID]string{recipient: "parent@example.com"}}

		adapter, err := mailer.NewAdapter(sender, directory)
		require.NoError(t, err)

		notif := emailNotification(recipient)
		result, err := adapter.Send(ctx, notif)
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSent, result)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, "parent@example.com", sender.sent[0].SendTo)
		assert.Equal(t, notif.Title, sender.sent[0].Subject)
		assert.Equal(t, notif.Type, sender.sent[0].Tag)
		assert.Contains(t, sender.sent[0].BodyHTML, notif.Message)
	})

	t.Run("escapes markup in title and message", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		sender := &fakeEmailSender{}
		directory := &fakeDirectory{addresses: map[uuid.UUID]string{recipient: "parent@example.com"}}

		adapter, err := mailer.NewAdapter(sender, directory)
		require.NoError(t, err)

		notif := emailNotification(recipient)
		notif.Message = `<script>alert("x")</script>`

		_, err = adapter.Send(ctx, notif)
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		assert.NotContains(t, sender.sent[0].BodyHTML, "<script>")
		assert.Contains(t, sender.sent[0].BodyHTML, "&lt;script&gt;")
	})

	t.Run("internal error detail stays out of the payload", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		sender := &fakeEmailSender{}
		directory := &fakeDirectory{addresses: map[uuid.UUID]string{recipient: "parent@example.com"}}

		adapter, err := mailer.NewAdapter(sender, directory)
		require.NoError(t, err)

		notif := emailNotification(recipient)
		diag := "smtp 550 relay denied"
		notif.ErrorMessage = &diag
		notif.Attempts = 2

		_, err = adapter.Send(ctx, notif)
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		assert.NotContains(t, sender.sent[0].BodyHTML, diag)
		assert.NotContains(t, sender.sent[0].Subject, diag)
	})

	t.Run("missing contact is a skip", func(t *testing.T) {
		t.Parallel()

		sender := &fakeEmailSender{}
		adapter, err := mailer.NewAdapter(sender, &fakeDirectory{})
		require.NoError(t, err)

		result, err := adapter.Send(ctx, emailNotification(uuid.New()))
		require.NoError(t, err)
		assert.Equal(t, delivery.ResultSkipped, result)
		assert.Empty(t, sender.sent)
	})

	t.Run("directory failure is a failure", func(t *testing.T) {
		t.Parallel()

		adapter, err := mailer.NewAdapter(&fakeEmailSender{}, &fakeDirectory{err: errors.New("directory down")})
		require.NoError(t, err)

		result, err := adapter.Send(ctx, emailNotification(uuid.New()))
		require.Error(t, err)
		assert.Equal(t, delivery.ResultFailed, result)
	})

	t.Run("transport failure is a failure", func(t *testing.T) {
		t.Parallel()

		recipient := uuid.New()
		sender := &fakeEmailSender{err: errors.New("postmark unavailable")}
		directory := &fakeDirectory{addresses: map[uuid.UUID]string{recipient: "parent@example.com"}}

		adapter, err := mailer.NewAdapter(sender, directory)
		require.NoError(t, err)

		result, err := adapter.Send(ctx, emailNotification(recipient))
		require.Error(t, err)
		assert.Equal(t, delivery.ResultFailed, result)
	})
}
