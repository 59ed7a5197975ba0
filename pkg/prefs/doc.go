// Package prefs stores per-recipient, per-notification-type channel
// preferences under an opt-out model: a recipient with no stored record has
// both email and push enabled.
//
// The absence of a record is meaningful, so Storage.Get returns ErrNotFound
// rather than a default-filled record. The Service layer applies the default
// in its convenience reads (IsEmailEnabled, IsPushEnabled, Channels) and
// validates notification types against the externally owned TemplateCatalog.
//
// Bulk operations (BulkSet, EnableAll, DisableAll) commit each type
// independently and report per-type results; there is no cross-type
// transaction and no rollback of already-applied entries. The generic setter
// rejects disabling both channels; only the explicit DisableAll sweep may
// store an everything-off preference.
package prefs
