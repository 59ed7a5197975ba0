package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/notify/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestNotificationID(t *testing.T) {
	t.Parallel()

	attr := logger.NotificationID("abc-123")
	require.Equal(t, "notification_id", attr.Key)
	assert.Equal(t, "abc-123", attr.Value.Any())

	empty := logger.NotificationID(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestRecipientID(t *testing.T) {
	t.Parallel()

	attr := logger.RecipientID("r-1")
	require.Equal(t, "recipient_id", attr.Key)
	assert.Equal(t, "r-1", attr.Value.Any())
}

func TestChannel(t *testing.T) {
	t.Parallel()

	attr := logger.Channel("email")
	require.Equal(t, "channel", attr.Key)
	assert.Equal(t, "email", attr.Value.String())
}

func TestNotifType(t *testing.T) {
	t.Parallel()

	attr := logger.NotifType("absence_alert")
	require.Equal(t, "type", attr.Key)
	assert.Equal(t, "absence_alert", attr.Value.String())
}

func TestAttempts(t *testing.T) {
	t.Parallel()

	attr := logger.Attempts(2)
	require.Equal(t, "attempts", attr.Key)
	assert.Equal(t, int64(2), attr.Value.Int64())
}

func TestBatchSize(t *testing.T) {
	t.Parallel()

	attr := logger.BatchSize(50)
	require.Equal(t, "batch_size", attr.Key)
	assert.Equal(t, int64(50), attr.Value.Int64())
}

func TestComponent(t *testing.T) {
	t.Parallel()

	attr := logger.Component("processor")
	require.Equal(t, "component", attr.Key)
	assert.Equal(t, "processor", attr.Value.String())
}
