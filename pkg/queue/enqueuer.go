package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Enqueuer handles notification enqueueing
type Enqueuer struct {
	storage        Storage
	defaultChannel Channel
}

// NewEnqueuer creates a new Enqueuer
func NewEnqueuer(storage Storage, opts ...EnqueuerOption) (*Enqueuer, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	options := &enqueuerOptions{
		defaultChannel: ChannelBoth,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Enqueuer{
		storage:        storage,
		defaultChannel: options.defaultChannel,
	}, nil
}

// Enqueue validates and stores a new notification for the given recipient.
// Returns the generated notification ID.
func (e *Enqueuer) Enqueue(ctx context.Context, recipientID uuid.UUID, notifType, title, message string, opts ...EnqueueOption) (uuid.UUID, error) {
	options := &enqueueOptions{
		channel: e.defaultChannel,
	}

	for _, opt := range opts {
		opt(options)
	}

	if recipientID == uuid.Nil {
		return uuid.Nil, ErrMissingRecipient
	}
	if notifType == "" {
		return uuid.Nil, ErrMissingType
	}
	if !options.channel.Valid() {
		return uuid.Nil, ErrInvalidChannel
	}

	notif := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        notifType,
		Channel:     options.channel,
		Title:       title,
		Message:     message,
		Status:      StatusPending,
		Attempts:    0,
		CreatedAt:   time.Now(),
	}

	id, err := e.storage.Enqueue(ctx, notif)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to enqueue %q notification for recipient %s: %w", notifType, recipientID, err)
	}

	return id, nil
}

// EnqueuerOption is a functional option for configuring an Enqueuer
type EnqueuerOption func(*enqueuerOptions)

type enqueuerOptions struct {
	defaultChannel Channel
}

// WithDefaultChannel sets the channel used when Enqueue is called without one
func WithDefaultChannel(channel Channel) EnqueuerOption {
	return func(o *enqueuerOptions) {
		if channel.Valid() {
			o.defaultChannel = channel
		}
	}
}

// EnqueueOption is a functional option for the Enqueue method
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	channel Channel
}

// WithChannel sets the requested delivery channel for the notification
func WithChannel(channel Channel) EnqueueOption {
	return func(o *enqueueOptions) {
		o.channel = channel
	}
}
