package prefs

import (
	"context"

	"github.com/google/uuid"
)

// Storage handles preference persistence. Get returns ErrNotFound when no
// record exists so callers can distinguish "explicitly set" from "default" —
// the absence of a record is meaningful and must not be coalesced away.
type Storage interface {
	// Get retrieves the preference for a recipient/type pair.
	Get(ctx context.Context, recipientID uuid.UUID, notifType string) (*Preference, error)

	// Set creates or replaces the preference for a recipient/type pair.
	Set(ctx context.Context, pref Preference) error

	// Delete removes the preference for a recipient/type pair, reverting
	// the pair to defaults. Deleting a missing record is a no-op.
	Delete(ctx context.Context, recipientID uuid.UUID, notifType string) error

	// DeleteAll removes every preference record for the recipient and
	// returns the number of deleted records.
	DeleteAll(ctx context.Context, recipientID uuid.UUID) (int, error)

	// List returns all preference records for the recipient.
	List(ctx context.Context, recipientID uuid.UUID) ([]Preference, error)
}

// TemplateCatalog exposes the active notification templates. The catalog is
// owned externally; the preference service only consults it for validation
// and for bulk sweeps with no explicit type list.
type TemplateCatalog interface {
	SelectActiveTemplates(ctx context.Context) ([]Template, error)
}
