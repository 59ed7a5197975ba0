package queue

import "errors"

// Common errors
var (
	// ErrStorageNil is returned when a nil storage is provided
	ErrStorageNil = errors.New("storage cannot be nil")

	// ErrNotificationNil is returned when attempting to enqueue a nil notification
	ErrNotificationNil = errors.New("notification cannot be nil")

	// ErrNotFound is returned when a notification does not exist in storage
	ErrNotFound = errors.New("notification not found")

	// ErrInvalidChannel is returned when the requested channel is not email, push or both
	ErrInvalidChannel = errors.New("channel must be email, push or both")

	// ErrMissingRecipient is returned when a notification has no recipient ID
	ErrMissingRecipient = errors.New("notification recipient is required")

	// ErrMissingType is returned when a notification has no type key
	ErrMissingType = errors.New("notification type is required")

	// ErrNotClaimable is returned when a record is not in pending status
	// and therefore cannot transition to processing
	ErrNotClaimable = errors.New("notification is not pending")

	// ErrDuplicateID is returned when enqueueing with an ID that already
	// exists in storage
	ErrDuplicateID = errors.New("notification id already exists")
)
