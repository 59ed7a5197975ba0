package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/google/uuid"

	"github.com/campuskit/notify/pkg/delivery"
	"github.com/campuskit/notify/pkg/queue"
)

// ContactDirectory resolves a recipient ID to a deliverable email address.
// The person directory is owned externally; only the address crosses the
// boundary.
type ContactDirectory interface {
	// EmailAddress returns the recipient's address, or ErrNoContact when
	// the recipient has no address on file.
	EmailAddress(ctx context.Context, recipientID uuid.UUID) (string, error)
}

// Adapter delivers queued notifications over email. It implements the email
// side of the batch processor's channel adapter contract: a missing contact
// address yields a skip, a transport error yields a failure.
type Adapter struct {
	sender    EmailSender
	directory ContactDirectory
}

// NewAdapter creates an email delivery adapter
func NewAdapter(sender EmailSender, directory ContactDirectory) (*Adapter, error) {
	if sender == nil {
		return nil, ErrSenderNil
	}
	if directory == nil {
		return nil, ErrDirectoryNil
	}
	return &Adapter{sender: sender, directory: directory}, nil
}

// Send delivers one notification to its recipient's email address.
// The outbound payload is built from the notification title and message
// only; queue-internal diagnostics never reach the recipient.
func (a *Adapter) Send(ctx context.Context, notif *queue.Notification) (delivery.Result, error) {
	address, err := a.directory.EmailAddress(ctx, notif.RecipientID)
	if err != nil {
		if errors.Is(err, ErrNoContact) {
			return delivery.ResultSkipped, nil
		}
		return delivery.ResultFailed, fmt.Errorf("contact lookup failed: %w", err)
	}

	params := SendEmailParams{
		SendTo:   address,
		Subject:  notif.Title,
		BodyHTML: renderBody(notif),
		Tag:      notif.Type,
	}

	if err := a.sender.SendEmail(ctx, params); err != nil {
		return delivery.ResultFailed, err
	}

	return delivery.ResultSent, nil
}

// renderBody wraps the notification message in a minimal HTML shell
func renderBody(notif *queue.Notification) string {
	return fmt.Sprintf("<h2>%s</h2><p>%s</p>",
		html.EscapeString(notif.Title),
		html.EscapeString(notif.Message),
	)
}
