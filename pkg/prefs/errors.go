package prefs

import "errors"

// Common errors
var (
	// ErrStorageNil is returned when a nil storage is provided
	ErrStorageNil = errors.New("storage cannot be nil")

	// ErrCatalogNil is returned when a nil template catalog is provided
	ErrCatalogNil = errors.New("template catalog cannot be nil")

	// ErrNotFound is returned when no preference record exists for the
	// recipient/type pair. Callers treat this as "use defaults".
	ErrNotFound = errors.New("preference not found")

	// ErrUnknownType is returned when the notification type is not in the
	// active template catalog
	ErrUnknownType = errors.New("unknown notification type")

	// ErrNoChannelEnabled is returned when a generic set would disable both
	// channels. Disabling everything requires the explicit DisableAll sweep.
	ErrNoChannelEnabled = errors.New("at least one channel must be enabled")

	// ErrMissingRecipient is returned when no recipient ID is provided
	ErrMissingRecipient = errors.New("recipient is required")
)
