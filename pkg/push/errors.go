package push

import "errors"

// Common errors
var (
	// ErrSenderNil is returned when a nil push sender is provided
	ErrSenderNil = errors.New("push sender cannot be nil")

	// ErrTokenStoreNil is returned when a nil token store is provided
	ErrTokenStoreNil = errors.New("token store cannot be nil")

	// ErrInvalidToken is returned by senders when the transport rejects a
	// device token as no longer valid. Adapters collect these tokens for
	// post-batch registry cleanup.
	ErrInvalidToken = errors.New("device token is invalid")

	// ErrEmptyToken is returned when registering an empty device token
	ErrEmptyToken = errors.New("device token cannot be empty")
)
