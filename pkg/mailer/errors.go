package mailer

import "errors"

var (
	ErrFailedToSendEmail = errors.New("mailer.errors.failed_to_send_email")
	ErrInvalidConfig     = errors.New("mailer.errors.invalid_config")
	ErrInvalidParams     = errors.New("mailer.errors.invalid_params")
	ErrSenderNil         = errors.New("mailer.errors.sender_nil")
	ErrDirectoryNil      = errors.New("mailer.errors.directory_nil")
	ErrNoContact         = errors.New("mailer.errors.no_contact_for_recipient")
)
