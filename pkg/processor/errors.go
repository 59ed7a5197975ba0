package processor

import "errors"

// Common errors
var (
	// ErrStorageNil is returned when a nil queue storage is provided
	ErrStorageNil = errors.New("queue storage cannot be nil")

	// ErrPreferencesNil is returned when a nil preference reader is provided
	ErrPreferencesNil = errors.New("preference reader cannot be nil")

	// ErrNoAdapters is returned when neither an email nor a push adapter
	// is configured
	ErrNoAdapters = errors.New("at least one channel adapter is required")
)
